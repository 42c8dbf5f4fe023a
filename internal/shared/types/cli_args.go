package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	DataFile   string
	Selection  string
	ReportName string
	ReportType []string
	Dir        string
	MaxRows    int
	Listen     string
	Profile    string
	Region     string
}
