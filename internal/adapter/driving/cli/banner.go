package cli

import (
	"fmt"
	"io"

	"github.com/diillson/sales-dashboard-go/pkg/console"
	"github.com/diillson/sales-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
   ____        _             ____            _     _                         _
  / ___|  __ _| | ___  ___  |  _ \  __ _ ___| |__ | |__   ___   __ _ _ __ __| |
  \___ \ / _' | |/ _ \/ __| | | | |/ _' / __| '_ \| '_ \ / _ \ / _' | '__/ _' |
   ___) | (_| | |  __/\__ \ | |_| | (_| \__ \ | | | |_) | (_) | (_| | | | (_| |
  |____/ \__,_|_|\___||___/ |____/ \__,_|___/_| |_|_.__/ \___/ \__,_|_|  \__,_|
`
	fmt.Fprintln(w, console.BrightGreen(banner))
	fmt.Fprintln(w, console.BrightCyan(fmt.Sprintf("Sales Dashboard CLI (v%s)", version.FormatVersion())))
}
