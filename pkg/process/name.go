package process

// ExecutableName computes the file name of an executable with the specified
// base name on the specified operating system.
func ExecutableName(base, goos string) string {
	if goos == "windows" {
		return base + ".exe"
	}
	return base
}
