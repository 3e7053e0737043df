package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	boardinadapter "runsheet/internal/modules/board/adapter/in"
	boardoutadapter "runsheet/internal/modules/board/adapter/out"
	boardin "runsheet/internal/modules/board/port/in"
	boardservice "runsheet/internal/modules/board/service"
	boardusecase "runsheet/internal/modules/board/usecase"
	deckinadapter "runsheet/internal/modules/deck/adapter/in"
	deckoutadapter "runsheet/internal/modules/deck/adapter/out"
	deckin "runsheet/internal/modules/deck/port/in"
	deckservice "runsheet/internal/modules/deck/service"
	deckusecase "runsheet/internal/modules/deck/usecase"
	importerinadapter "runsheet/internal/modules/importer/adapter/in"
	importeroutadapter "runsheet/internal/modules/importer/adapter/out"
	importerin "runsheet/internal/modules/importer/port/in"
	importerservice "runsheet/internal/modules/importer/service"
	importerusecase "runsheet/internal/modules/importer/usecase"
	"runsheet/internal/platform/clock"
	"runsheet/internal/platform/config"
	"runsheet/internal/platform/id"
	uiapp "runsheet/internal/ui/app"
)

type App struct {
	BoardCLI    boardinadapter.CLIHandler
	DeckCLI     deckinadapter.CLIHandler
	ImporterCLI *importerinadapter.CLIHandler

	boardUC    boardin.Usecase
	deckUC     deckin.Usecase
	importerUC importerin.Usecase
}

// New wires platform singletons, adapters, services, and usecases, and
// hydrates the board from disk so every surface sees persisted state.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	log := hclog.New(&hclog.LoggerOptions{Name: "runsheet", Level: hclog.Warn})

	itemStore := deckoutadapter.NewWorkspaceItemStore(cfg.ActivitiesDir)
	itemProjector, err := deckoutadapter.NewSQLiteItemProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new item projector: %w", err)
	}
	deckUC := deckusecase.NewInteractor(deckservice.NewItemService(clk, ids, itemStore, itemProjector))

	stateStore := boardoutadapter.NewFileStateStore(cfg.StateDir)
	runProjector, err := boardoutadapter.NewSQLiteRunProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new run projector: %w", err)
	}
	boardSvc := boardservice.NewBoardService(stateStore, runProjector, log.Named("board"))
	boardSvc.Hydrate(ctx)
	boardUC := boardusecase.NewInteractor(boardSvc, deckUC, clk, ids)

	importerUC := importerusecase.NewInteractor(importerservice.NewImporterService(
		importeroutadapter.NewFileManifestStore(cfg.ImportersDir),
		importeroutadapter.NewGRPCHost(),
		deckUC,
		cfg.WorkspacePath,
		log.Named("importer-host"),
	))

	return &App{
		BoardCLI:    boardinadapter.NewCLIHandler(boardUC),
		DeckCLI:     deckinadapter.NewCLIHandler(deckUC),
		ImporterCLI: importerinadapter.NewCLIHandler(importerUC),
		boardUC:     boardUC,
		deckUC:      deckUC,
		importerUC:  importerUC,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.boardUC, app.deckUC, app.importerUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
