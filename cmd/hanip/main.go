package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"hanip/internal/cli"
	"hanip/internal/config"
	"hanip/internal/device"
	"hanip/internal/emitter"
	"hanip/internal/engine"
	"hanip/internal/layout"
)

const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := cli.Parse(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanip: %v\n", err)
		fmt.Fprintln(os.Stderr, cli.Usage())
		return exitConfig
	}

	if opts.ShowHelp {
		fmt.Println(cli.Usage())
		return exitOK
	}

	if opts.ListLayouts {
		for _, name := range layout.Names() {
			fmt.Println(name)
		}
		return exitOK
	}

	if opts.ListDevices {
		devices, err := device.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "hanip: %v\n", err)
			return exitError
		}
		for _, dev := range devices {
			fmt.Printf("%s\t%s\n", dev.Path, dev.Name)
		}
		return exitOK
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	toggleCfg, err := config.Resolve(opts.ToggleConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanip: %v\n", err)
		return exitConfig
	}

	lay, err := layout.Load(opts.LayoutName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanip: %v\n", err)
		return exitConfig
	}

	devicePath := opts.DevicePath
	if devicePath == "" {
		detected, err := device.Detect()
		if err != nil {
			var detection device.DetectionError
			if errors.As(err, &detection) {
				fmt.Fprintf(os.Stderr, "hanip: %s\n", detection.Message)
			} else {
				fmt.Fprintf(os.Stderr, "hanip: detect keyboard: %v\n", err)
			}
			return exitError
		}
		devicePath = detected.Path
		log.Info("keyboard detected", "path", detected.Path, "name", detected.Name)
	}

	fd, err := unix.Open(devicePath, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanip: open %s: %v\n", devicePath, err)
		return exitError
	}
	defer unix.Close(fd)

	out, err := emitter.Open(layout.HexKeycodes(), opts.TTYPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hanip: %v\n", err)
		return exitError
	}

	eng := engine.New(fd, lay, toggleCfg, out, log)
	if err := eng.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "hanip: %v\n", err)
		return exitError
	}
	return exitOK
}
