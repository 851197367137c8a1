// Command docwright builds Word documents from Markdown and friends.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docwright/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docwright/internal/adapters/driven/docx"
	"github.com/custodia-labs/docwright/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/docwright/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docwright/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docwright/internal/adapters/driving/cli"
	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/core/services"
	"github.com/custodia-labs/docwright/internal/inline"
	"github.com/custodia-labs/docwright/internal/logger"
	"github.com/custodia-labs/docwright/internal/normalisers"
	docxnorm "github.com/custodia-labs/docwright/internal/normalisers/docx"
	htmlnorm "github.com/custodia-labs/docwright/internal/normalisers/html"
	"github.com/custodia-labs/docwright/internal/normalisers/markdown"
	"github.com/custodia-labs/docwright/internal/normalisers/plaintext"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	defer cli.Close()

	if err := cli.Execute(); err != nil {
		cli.Close()
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the core services.
func bootstrap(configPath string) (*cli.Services, func(), error) {
	configStore, err := openConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings := services.LoadSettings(configStore)
	logger.Debug("config %s: output=%s storage=%s", configStore.Path(), settings.OutputDir, settings.Storage)

	sessions, closeSessions, err := openSessions(settings)
	if err != nil {
		return nil, nil, err
	}

	output, err := filesystem.NewOutputStore(settings.OutputDir)
	if err != nil {
		closeSessions()
		return nil, nil, fmt.Errorf("output directory: %w", err)
	}

	builders := docx.NewFactory()
	parser := markdown.New()
	mapper := services.NewContentMapper(inline.NewFormatter())
	registry := normalisers.NewRegistry(parser, htmlnorm.New(), plaintext.New(), docxnorm.New())

	conversion := services.NewConversionService(parser, mapper, registry, builders)
	conversion.SetBaseStyles(settings.Styles)

	documents := services.NewDocumentService(sessions, output, builders, parser, mapper)
	documents.SetDefaults(settings.Author, settings.Styles)

	return &cli.Services{
		Conversion: conversion,
		Document:   documents,
		Settings:   services.NewSettingsService(configStore),
	}, closeSessions, nil
}

func openConfig(path string) (*file.ConfigStore, error) {
	if path != "" {
		return file.NewConfigStoreAt(path)
	}
	return file.NewConfigStore("")
}

func openSessions(settings domain.Settings) (driven.SessionStore, func(), error) {
	if settings.Storage != domain.StorageSQLite {
		return memory.NewSessionStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(settings.StorageDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session database: %w", err)
	}
	logger.Debug("sessions stored in %s", store.Path())
	return store.SessionStore(), func() { _ = store.Close() }, nil
}
