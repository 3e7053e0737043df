package usecase

import (
	"context"

	"runsheet/internal/modules/importer/dto"
	importerin "runsheet/internal/modules/importer/port/in"
	"runsheet/internal/modules/importer/service"
)

type Interactor struct {
	svc *service.ImporterService
}

func NewInteractor(svc *service.ImporterService) importerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ImporterInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Check(ctx context.Context) ([]dto.CheckResult, error) {
	return i.svc.Check(ctx)
}

func (i *Interactor) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	return i.svc.Run(ctx, input)
}
