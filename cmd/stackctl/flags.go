package main

// GlobalFlags holds flags shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string
}

// ServeFlags holds serve-only flags. Empty values fall back to the config file.
type ServeFlags struct {
	Listen   string
	BasePath string
}
