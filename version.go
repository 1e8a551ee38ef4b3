package embcue

// Version is the semantic version of the embcue library.
const Version = "0.1.0"
