package in

import (
	"context"

	"runsheet/internal/modules/importer/dto"
	importerin "runsheet/internal/modules/importer/port/in"
)

type CLIHandler struct {
	usecase importerin.Usecase
}

func NewCLIHandler(usecase importerin.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) List(ctx context.Context) ([]dto.ImporterInfo, error) {
	return h.usecase.List(ctx)
}

func (h *CLIHandler) Check(ctx context.Context) ([]dto.CheckResult, error) {
	return h.usecase.Check(ctx)
}

func (h *CLIHandler) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	return h.usecase.Run(ctx, input)
}
