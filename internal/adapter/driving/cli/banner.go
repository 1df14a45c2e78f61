package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/arrivals-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     _             _            _        ____            _     _                         _
    / \   _ __ _ _(_)_   ____ _| |___   |  _ \  __ _ ___| |__ | |__   ___   __ _ _ __ __| |
   / _ \ | '__| '__| \ \ / / _' | / __|  | | | |/ _' / __| '_ \| '_ \ / _ \ / _' | '__/ _' |
  / ___ \| |  | |  | |\ V / (_| | \__ \  | |_| | (_| \__ \ | | | |_) | (_) | (_| | | | (_| |
 /_/   \_\_|  |_|  |_| \_/ \__,_|_|___/  |____/ \__,_|___/_| |_|_.__/ \___/ \__,_|_|  \__,_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Foreign Entries Dashboard CLI (v%s)", formattedVersion)))
}
