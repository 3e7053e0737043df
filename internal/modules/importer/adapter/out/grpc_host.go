package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"runsheet/internal/modules/importer/adapter/out/rpc"
	"runsheet/internal/modules/importer/domain"
	importerout "runsheet/internal/modules/importer/port/out"
	apperrors "runsheet/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() importerout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Description: meta.Description}, nil
}

func (h *GRPCHost) ImportItems(ctx context.Context, manifest domain.Manifest, request domain.ImportRequest) ([]domain.ImportedItem, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.ImportItems(callCtx, &rpc.ImportRequest{
		WorkspacePath: request.WorkspacePath,
		Query:         request.Query,
		Limit:         int32(request.Limit),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrImporterTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("import items: %w", err)
	}
	out := make([]domain.ImportedItem, 0, len(response.Items))
	for _, item := range response.Items {
		out = append(out, domain.ImportedItem{
			Name:           item.Name,
			Slug:           item.Slug,
			Tags:           item.Tags,
			DefaultMinutes: int(item.DefaultMinutes),
			Body:           item.Body,
		})
	}
	return out, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (rpc.RunsheetImporterClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  rpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          rpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start importer client: %w", err)
	}
	raw, err := rpcClient.Dispense(rpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense importer: %w", err)
	}
	typed, ok := raw.(rpc.RunsheetImporterClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("importer rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
