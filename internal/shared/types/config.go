package types

// Config represents the application configuration that can be loaded from a file.
// MaxRows é ponteiro para distinguir "max_rows = 0" (todas as linhas) de chave ausente;
// ReportType nil significa chave ausente e lista vazia desliga a exportação.
type Config struct {
	DataFile   string   `json:"data_file" yaml:"data_file" toml:"data_file"`
	Selection  string   `json:"selection" yaml:"selection" toml:"selection"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
	MaxRows    *int     `json:"max_rows" yaml:"max_rows" toml:"max_rows"`
	Listen     string   `json:"listen" yaml:"listen" toml:"listen"`
	Profile    string   `json:"profile" yaml:"profile" toml:"profile"`
	Region     string   `json:"region" yaml:"region" toml:"region"`
}

// Valores padrão usados quando nem flag nem arquivo de configuração definem o campo.
const (
	DefaultDataFile  = "data/sales.csv"
	DefaultSelection = "revenue"
	DefaultListen    = ":8050"
)

// DatasetSource identifica de onde o dataset é carregado. Profile e Region
// só são usados para caminhos s3://.
type DatasetSource struct {
	Path    string
	Profile string
	Region  string
}
