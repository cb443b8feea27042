package utils

import (
	"os"
	"regexp"
)

// regionPattern matches commercial, GovCloud and China partition region codes
var regionPattern = regexp.MustCompile(`^(us|eu|ap|sa|ca|me|af|il|mx)(-gov)?-(north|south|east|west|central|northeast|southeast|northwest|southwest)-\d$|^cn-(north|northwest)-\d$`)

// IsValidRegion checks if a region code is well formed
func IsValidRegion(region string) bool {
	return regionPattern.MatchString(region)
}

// GetDefaultRegion returns the region from the environment, or an empty
// string to let the SDK resolve it from shared config or IMDS
func GetDefaultRegion() string {
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	return os.Getenv("AWS_DEFAULT_REGION")
}
