package filesystem

const (
	// TemporaryNamePrefix is the file name prefix used for all temporary files
	// created by mixpkg. It may be suffixed with additional elements if
	// desired.
	TemporaryNamePrefix = ".mixpkg-temporary-"
)
