package in

import (
	"context"

	"runsheet/internal/modules/importer/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ImporterInfo, error)
	Check(ctx context.Context) ([]dto.CheckResult, error)
	Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error)
}
