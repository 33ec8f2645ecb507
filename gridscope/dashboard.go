package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/itohio/gridscope/pkg/acquire"
	"github.com/itohio/gridscope/pkg/config"
	"github.com/itohio/gridscope/pkg/device"
	"github.com/itohio/gridscope/pkg/scope"
	"github.com/itohio/gridscope/pkg/window"
)

// runDashboard connects to the device and shows the plots until the window is
// closed, the process is interrupted or the device fails.
// The window is only created after the device opened successfully.
func runDashboard(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}

	var dev device.Device
	if opts.mock {
		dev = device.NewMock(&cfg.Mock)
		logger.Info().Msg("using simulated device")
	} else {
		dev = device.New(cfg.Serial.Port, cfg.Serial.BaudRate, cfg.Serial.ReadTimeout)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := acquire.New(dev, window.New(cfg.Window.Points), acquire.Options{
		PollInterval: cfg.Poll.Interval,
		SettleDelay:  cfg.Serial.SettleDelay,
		Start:        processStart,
	}, logger)

	if err := loop.Connect(ctx); err != nil {
		if errors.Is(err, acquire.ErrInterrupted) {
			return nil
		}
		logger.Error().Err(err).Msg("please check your connection and port name")
		return err
	}

	return showDashboard(ctx, cfg, loop, logger)
}

// showDashboard runs the Fyne event loop on the calling goroutine and the
// acquisition loop on another one.
func showDashboard(ctx context.Context, cfg *config.Config, loop *acquire.Loop, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application := app.NewWithID("com.itohio.gridscope")

	win := application.NewWindow(cfg.Display.Title)
	win.Resize(fyne.NewSize(cfg.Display.Width, cfg.Display.Height))
	win.CenterOnScreen()

	dash := scope.NewDashboard(cfg.Display.Title)
	win.SetContent(dash.Content())

	var windowClosed atomic.Bool
	win.SetOnClosed(func() {
		windowClosed.Store(true)
		dash.Close()
		cancel()
	})

	// Releases a Render blocked on the UI thread once ctx ends
	go closeOnDone(ctx, dash)

	result := make(chan error, 1)
	go func() {
		// Show the zero-filled window before the first reading arrives
		dash.Render(loop.Window())
		err := loop.Run(ctx, dash)
		dash.Close()
		if !windowClosed.Load() {
			fyne.Do(application.Quit)
		}
		result <- err
	}()

	win.ShowAndRun()
	dash.Close()
	cancel()

	err := <-result
	logger.Info().Msg("all plots closed")
	return err
}

type closer interface {
	Close()
}

func closeOnDone(ctx context.Context, c closer) {
	<-ctx.Done()
	c.Close()
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.port != "" {
		cfg.Serial.Port = opts.port
	}

	return cfg, nil
}
