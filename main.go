package main

import (
	"github.com/alecthomas/kong"

	"iconsheet/prefs"
	"iconsheet/slicer"
)

var cli struct {
	Slice  slicer.SliceCmd `cmd:"" help:"Slice an icon sheet into individual icon files."`
	Info   slicer.InfoCmd  `cmd:"" help:"Print the grid geometry an icon sheet resolves to."`
	Config prefs.CLICmd    `cmd:"" help:"Manage stored slicing defaults."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("iconsheet"),
		kong.Description("Slices icon sheets laid out as uniform grids into individually addressable icons."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run())
}
