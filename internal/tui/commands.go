package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/api"
	"github.com/muurk/shoplist/internal/logging"
	"github.com/muurk/shoplist/internal/shopping"
)

// Service is the slice of the API client the TUI depends on. *api.Client
// satisfies it.
type Service interface {
	Lists(ctx context.Context) ([]shopping.List, error)
	Providers(ctx context.Context) ([]shopping.Provider, error)
	UpdateList(ctx context.Context, update shopping.ListUpdate) api.WriteResult
	Purchase(ctx context.Context, req shopping.PurchaseRequest) api.WriteResult
	CreateList(ctx context.Context, name string) (shopping.List, api.WriteResult)
}

// cmdTimeout bounds a single command including read retries
const cmdTimeout = 30 * time.Second

// Message types for async operations
type listsLoadedMsg struct {
	lists []shopping.List
	err   error
}

type providersLoadedMsg struct {
	providers []shopping.Provider
	err       error
}

type saveCompleteMsg struct {
	name   string
	update shopping.ListUpdate
	result api.WriteResult
}

type purchaseCompleteMsg struct {
	listName string
	request  shopping.PurchaseRequest
	result   api.WriteResult
}

type createCompleteMsg struct {
	list   shopping.List
	result api.WriteResult
}

func loadListsCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		lists, err := svc.Lists(ctx)
		if err != nil {
			logging.Warn("Failed to load lists", zap.Error(err))
		}
		return listsLoadedMsg{lists: lists, err: err}
	}
}

func loadProvidersCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		providers, err := svc.Providers(ctx)
		if err != nil {
			logging.Warn("Failed to load providers", zap.Error(err))
		}
		return providersLoadedMsg{providers: providers, err: err}
	}
}

func saveListCmd(svc Service, name string, update shopping.ListUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		return saveCompleteMsg{name: name, update: update, result: svc.UpdateList(ctx, update)}
	}
}

func purchaseCmd(svc Service, listName string, req shopping.PurchaseRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		return purchaseCompleteMsg{listName: listName, request: req, result: svc.Purchase(ctx, req)}
	}
}

func createListCmd(svc Service, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()

		list, result := svc.CreateList(ctx, name)
		return createCompleteMsg{list: list, result: result}
	}
}
