package app

// Name is the application name shown by the version runner and the selector.
const Name = "vswitch"
