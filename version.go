package statesync

// Version is the release of the statesync module.
const Version = "0.3.0"
