// Command plot writes the membership plots of every variable for the
// configured BMI profile.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/fitfuzz/internal/config"
	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/plot"
	"github.com/okian/fitfuzz/pkg/logger"
)

func main() {
	var (
		out     = flag.String("out", "plots", "Output directory")
		profile = flag.String("profile", "", "BMI profile: reference or widened (default: from config)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Get().Named("plot")

	if err := run(ctx, *out, *profile); err != nil {
		log.Error(ctx, "plot failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, dir, profileName string) error {
	if profileName == "" {
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		profileName = cfg.BMINormalProfile
	}
	profile, err := exercise.ParseProfile(profileName)
	if err != nil {
		return err
	}
	age, bmi, minutes, err := exercise.Variables(profile)
	if err != nil {
		return err
	}
	paths, err := plot.WriteAll(dir, age, bmi, minutes)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Get().Info(ctx, "wrote plot", logger.String("path", p), logger.String("profile", string(profile)))
	}
	return nil
}
