package runner

import (
	"github.com/projectdiscovery/gologger"

	"github.com/bmavalos/netlog-agent/pkg/version"
)

const banner = `
             __  __                                        __
  ___  ___  / /_/ /__  ___ _______ ____ ____ ___  ___  ___/ /_
 / _ \/ -_)/ __/ / _ \/ _ '/___/ _ '/ _ '/ -_) _ \/ __/ __/
/_//_/\__/ \__/_/\___/\_, /    \_,_/\_, /\__/_//_/\__/\__/
                     /___/        /___/
`

// showBanner prints the project banner and version.
func showBanner() {
	gologger.Print().Msgf("%s\t%s\n\n", banner, version.GetVersion())
}
