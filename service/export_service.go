package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/storage"

	"github.com/google/uuid"
)

// ExportService renders saved outlines into documents and persists them
// through the configured storage backend.
type ExportService struct {
	store storage.Storage
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// WithExportStorage sets the storage backend
func WithExportStorage(store storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.store = store
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportResult describes a stored export
type ExportResult struct {
	ExportID    uuid.UUID `json:"export_id"`
	StoragePath string    `json:"storage_path"`
	Format      string    `json:"format"`
}

// Export renders an outline in the requested format ("text" or
// "markdown") and writes it to storage.
func (s *ExportService) Export(ctx context.Context, saved *models.SavedOutline, format string) (*ExportResult, error) {
	if s.store == nil {
		return nil, errors.New("export storage not set")
	}
	if saved == nil {
		return nil, errors.New("outline is nil")
	}

	var content string
	switch format {
	case "markdown":
		content = renderMarkdown(saved)
	case "", "text":
		format = "text"
		content = renderPlainText(saved)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	exportID := uuid.New()
	path, err := s.store.Save(ctx, exportID, format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	return &ExportResult{
		ExportID:    exportID,
		StoragePath: path,
		Format:      format,
	}, nil
}

func renderPlainText(saved *models.SavedOutline) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "レポート構成案: %s\n", saved.Topic)
	fmt.Fprintf(&sb, "分野: %s / 想定字数: %d字 / 指導教員タイプ: %s\n",
		fieldDisplayNames[saved.Field], saved.WordCount, saved.SupervisorType)
	if saved.CoreQuestion != nil && *saved.CoreQuestion != "" {
		fmt.Fprintf(&sb, "核となる問い: %s\n", *saved.CoreQuestion)
	}

	for _, section := range saved.Sections {
		fmt.Fprintf(&sb, "\n【%s】\n", section.Title)
		for i, point := range section.Points {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, point)
		}
	}

	return sb.String()
}

func renderMarkdown(saved *models.SavedOutline) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", saved.Topic)
	fmt.Fprintf(&sb, "- 分野: %s\n- 想定字数: %d字\n- 指導教員タイプ: %s\n",
		fieldDisplayNames[saved.Field], saved.WordCount, saved.SupervisorType)
	if saved.CoreQuestion != nil && *saved.CoreQuestion != "" {
		fmt.Fprintf(&sb, "- 核となる問い: %s\n", *saved.CoreQuestion)
	}

	for _, section := range saved.Sections {
		fmt.Fprintf(&sb, "\n## %s\n\n", section.Title)
		for _, point := range section.Points {
			fmt.Fprintf(&sb, "- %s\n", point)
		}
	}

	return sb.String()
}
