package version

import "fmt"

var (
	Version   = "0.1.0"
	BuildTime = "development"
	GitCommit = "unknown"
)

func String() string {
	return fmt.Sprintf("dithercrush v%s (%s, %s)", Version, GitCommit, BuildTime)
}
