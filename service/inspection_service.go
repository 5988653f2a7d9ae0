package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/parabel-ml/parabel/domain"
	"github.com/parabel-ml/parabel/internal/persistence"
)

// InspectionService implements domain.InspectionService: load a
// persisted model and summarize each tree's shape without running a
// prediction.
type InspectionService struct {
	writer domain.ReportWriter
	format *FormatUtils
}

// NewInspectionService creates an inspection service.
func NewInspectionService(writer domain.ReportWriter) *InspectionService {
	return &InspectionService{writer: writer, format: NewFormatUtils()}
}

// Inspect implements domain.InspectionService.
func (s *InspectionService) Inspect(ctx context.Context, req domain.InspectRequest) (*domain.InspectResponse, error) {
	modelFile, err := os.Open(req.ModelPath)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("failed to open model: %s", req.ModelPath), err)
	}
	defer modelFile.Close()

	model, err := persistence.Load(modelFile)
	if err != nil {
		return nil, err
	}

	trees := make([]domain.TreeSummary, len(model.Trees))
	for i, tr := range model.Trees {
		depth, branches, leaves, labels := summarizeNode(tr.Root, 0)
		trees[i] = domain.TreeSummary{Index: i, Depth: depth, NumBranches: branches, NumLeaves: leaves, NumLabels: labels}
	}

	resp := &domain.InspectResponse{
		NTrees:    len(model.Trees),
		NFeatures: model.NFeatures,
		Hyper:     model.Hyper,
		Trees:     trees,
	}

	if err := s.write(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// summarizeNode walks a tree, returning its max depth and node/label
// counts. depth is n's distance from the root (0 for the root itself).
func summarizeNode(n *domain.TreeNode, depth int) (maxDepth, branches, leaves, labels int) {
	if n == nil {
		return depth, 0, 0, 0
	}
	if n.IsLeaf() {
		return depth, 0, 1, len(n.Labels)
	}
	maxDepth = depth
	branches = 1
	for _, child := range n.Children {
		d, b, l, lbl := summarizeNode(child, depth+1)
		if d > maxDepth {
			maxDepth = d
		}
		branches += b
		leaves += l
		labels += lbl
	}
	return maxDepth, branches, leaves, labels
}

func (s *InspectionService) write(req domain.InspectRequest, resp *domain.InspectResponse) error {
	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}

	switch req.OutputFormat {
	case domain.OutputFormatJSON:
		return s.writer.Write(writer, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
			return WriteJSON(w, resp)
		})
	case domain.OutputFormatYAML:
		return s.writer.Write(writer, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
			return WriteYAML(w, resp)
		})
	default:
		return s.writer.Write(writer, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
			return s.writeText(w, resp)
		})
	}
}

func (s *InspectionService) writeText(w io.Writer, resp *domain.InspectResponse) error {
	if _, err := io.WriteString(w, s.format.FormatMainHeader("parabel model")); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s.format.FormatLabel("trees", resp.NTrees)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s.format.FormatLabel("features", resp.NFeatures)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s.format.FormatLabel("loss", resp.Hyper.Linear.LossType)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, tr := range resp.Trees {
		line := fmt.Sprintf("tree %-3d depth=%-3d branches=%-5d leaves=%-5d labels=%d\n",
			tr.Index, tr.Depth, tr.NumBranches, tr.NumLeaves, tr.NumLabels)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
