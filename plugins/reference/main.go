package main

import (
	"context"
	"strings"

	"runsheet/internal/modules/importer/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// Built-in facilitation activities served by the sample importer.
var catalog = []rpc.ImportedItem{
	{
		Name:           "Check In Round",
		Slug:           "check-in-round",
		Tags:           []string{"opening", "warmup"},
		DefaultMinutes: 5,
		Body:           "## How to run\n\nEach participant answers one short prompt in turn.\n\n## Materials\n\nNone.\n\n## Debrief prompts\n\nWhat surprised you?\n",
	},
	{
		Name:           "Lean Coffee",
		Slug:           "lean-coffee",
		Tags:           []string{"discussion", "agenda"},
		DefaultMinutes: 25,
		Body:           "## How to run\n\nCollect topics, dot vote, discuss in timeboxes, vote to continue.\n\n## Materials\n\nSticky notes, markers.\n\n## Debrief prompts\n\nWhich topic deserves a follow-up?\n",
	},
	{
		Name:           "Dot Voting",
		Slug:           "dot-voting",
		Tags:           []string{"decision", "voting"},
		DefaultMinutes: 10,
		Body:           "## How to run\n\nEach participant places a fixed number of dots on options.\n\n## Materials\n\nDot stickers.\n\n## Debrief prompts\n\nDoes the result feel right to everyone?\n",
	},
	{
		Name:           "1-2-4-All",
		Slug:           "1-2-4-all",
		Tags:           []string{"discussion", "ideation"},
		DefaultMinutes: 15,
		Body:           "## How to run\n\nSilent reflection, pairs, foursomes, then whole group shares.\n\n## Materials\n\nPaper and pens.\n\n## Debrief prompts\n\nWhat idea gained the most momentum?\n",
	},
	{
		Name:           "Retro Starfish",
		Slug:           "retro-starfish",
		Tags:           []string{"retro"},
		DefaultMinutes: 30,
		Body:           "## How to run\n\nCollect items under keep, more, less, start, stop.\n\n## Materials\n\nWhiteboard with five segments.\n\n## Debrief prompts\n\nWhich action do we commit to first?\n",
	},
	{
		Name:           "Temperature Check",
		Slug:           "temperature-check",
		Tags:           []string{"closing", "pulse"},
		DefaultMinutes: 5,
		Body:           "## How to run\n\nEveryone rates the session one to five with one word of context.\n\n## Materials\n\nNone.\n\n## Debrief prompts\n\nWhat would move your score up one point?\n",
	},
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{
		Name:        "reference",
		Version:     "1.0.0",
		Description: "built-in facilitation activities",
	}, nil
}

func (s *server) ImportItems(_ context.Context, in *rpc.ImportRequest) (*rpc.ImportItemsResponse, error) {
	query := strings.ToLower(strings.TrimSpace(in.Query))
	items := make([]rpc.ImportedItem, 0, len(catalog))
	for _, item := range catalog {
		if query != "" && !matches(item, query) {
			continue
		}
		if in.Limit > 0 && int32(len(items)) >= in.Limit {
			break
		}
		items = append(items, item)
	}
	return &rpc.ImportItemsResponse{Items: items}, nil
}

func matches(item rpc.ImportedItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Name), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
