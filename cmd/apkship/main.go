// Command apkship builds a mobile release package, uploads it to Google
// Drive under <root folder>/<app name>/<date>, and announces the shareable
// link on a chat webhook.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/apkship/apkship/internal/auth"
	"github.com/apkship/apkship/internal/build"
	"github.com/apkship/apkship/internal/config"
	"github.com/apkship/apkship/internal/logging"
	"github.com/apkship/apkship/internal/notify"
	"github.com/apkship/apkship/internal/pipeline"
	"github.com/apkship/apkship/internal/storage"
)

func main() {
	configPath := flag.String("config", "apkship.yaml", "path to the YAML config file")
	flag.Parse()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenStore(cfg.Drive.TokenFile)
	authenticator, err := auth.NewAuthenticator(cfg.Drive.CredentialsFile, tokens, consentViaStdin, log)
	if err != nil {
		log.Error(ctx, "failed to load credentials", "error", err)
		os.Exit(1)
	}
	service, err := authenticator.DriveService(ctx)
	if err != nil {
		log.Error(ctx, "failed to authenticate with drive", "error", err)
		os.Exit(1)
	}

	drive := storage.NewDriveStorage(service)
	p := pipeline.New(pipeline.Options{
		AppName:      cfg.App.Name,
		RootFolder:   cfg.Drive.RootFolder,
		ArtifactPath: cfg.Build.Artifact,
		SkipBuild:    cfg.Build.Skip,
		Builder:      build.NewRunner(cfg.Build.Command, cfg.Build.Args, cfg.Build.Dir, log),
		Resolver:     storage.NewResolver(drive, storage.FolderID(cfg.Drive.RootFolderID), log),
		Publisher:    storage.NewPublisher(drive, log),
		Notifier:     newNotifier(cfg, log),
		Logger:       log,
	})

	result, err := p.Run(ctx)
	if err != nil {
		log.Error(ctx, "release failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Uploaded %s\n", result.Artifact.Name)
	fmt.Printf("Link: %s\n", result.Artifact.WebViewLink)
	if result.NotifyErr != nil {
		fmt.Printf("Warning: notification failed: %v\n", result.NotifyErr)
	}
}

// newNotifier returns nil when no webhook is configured, which disables the
// announcement step.
func newNotifier(cfg config.Config, log logging.Logger) pipeline.Notifier {
	if cfg.Webhook.URL == "" {
		return nil
	}
	return notify.NewNotifier(cfg.Webhook.URL, nil, log)
}

// consentViaStdin prints the authorization URL and reads the code the
// operator pastes back.
func consentViaStdin(_ context.Context, authURL string) (string, error) {
	fmt.Printf("Open the following link in your browser and authorize the app:\n%s\n", authURL)
	fmt.Print("Enter the authorization code: ")

	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no authorization code entered")
	}
	return strings.TrimSpace(sc.Text()), nil
}
