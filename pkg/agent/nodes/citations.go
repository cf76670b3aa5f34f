package nodes

import (
	"context"

	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/apperror"
	"ai-recruiter-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// Citations resolves retrieved points into files and candidate records owned
// by the acting user.
type Citations struct {
	Directory agent.Directory
	Logger    agent.Logger
}

func (n *Citations) Handle(ctx context.Context, s agent.State) (agent.Update, error) {
	info, ok := agent.RunInfoFrom(ctx)
	if !ok || info.UserID == uuid.Nil {
		return agent.Update{}, apperror.Unauthorized("User not found")
	}

	files, resumeCandidates, err := n.resolveResumes(ctx, info.UserID, s.ResumeRetrievedPoints)
	if err != nil {
		return agent.Update{}, err
	}

	candidates, err := n.resolveCandidates(ctx, info.UserID, s.CandidateRetrievedPoints)
	if err != nil {
		return agent.Update{}, err
	}

	n.Logger.Debug(moduleName, "Citations resolved", map[string]interface{}{
		"files":             len(files),
		"resume_candidates": len(resumeCandidates),
		"candidates":        len(candidates),
	})

	return agent.Update{
		Citations:        files,
		Candidates:       candidates,
		ResumeCandidates: resumeCandidates,
	}, nil
}

func (n *Citations) resolveResumes(ctx context.Context, ownerID uuid.UUID, points []vectorstore.Point) ([]agent.File, []agent.ResumeCandidate, error) {
	var fileIDs, docIDs []uuid.UUID
	seenFile := make(map[uuid.UUID]bool)
	chunks := make(map[uuid.UUID][]string)

	for _, p := range points {
		if p.Payload == nil {
			continue
		}
		docID, err := uuid.Parse(p.String(vectorstore.PayloadKnowledgeBaseDocumentID))
		if err != nil {
			n.Logger.Warn(moduleName, "Resume point without document id", map[string]interface{}{"point_id": p.ID})
			continue
		}
		if fileID, err := uuid.Parse(p.String(vectorstore.PayloadFileID)); err == nil && !seenFile[fileID] {
			seenFile[fileID] = true
			fileIDs = append(fileIDs, fileID)
		}
		if _, ok := chunks[docID]; !ok {
			docIDs = append(docIDs, docID)
		}
		chunks[docID] = append(chunks[docID], p.Text())
	}

	files := []agent.File{}
	if len(fileIDs) > 0 {
		found, err := n.Directory.GetFilesByIDs(ctx, fileIDs, ownerID)
		if err != nil {
			return nil, nil, apperror.Upstream("failed to load cited files", err)
		}
		files = orderFiles(found, fileIDs)
	}

	resumeCandidates := []agent.ResumeCandidate{}
	for _, docID := range docIDs {
		candidate, err := n.Directory.GetCandidateByKnowledgeBaseDocumentID(ctx, docID, ownerID)
		if err != nil {
			return nil, nil, apperror.Upstream("failed to load resume candidate", err)
		}
		if candidate == nil {
			continue
		}
		doc, err := n.Directory.GetKnowledgeBaseDocument(ctx, docID)
		if err != nil {
			return nil, nil, apperror.Upstream("failed to load resume document", err)
		}
		resumeCandidates = append(resumeCandidates, agent.ResumeCandidate{
			Candidate:             *candidate,
			Chunks:                chunks[docID],
			KnowledgeBaseDocument: doc,
		})
	}

	return files, resumeCandidates, nil
}

func (n *Citations) resolveCandidates(ctx context.Context, ownerID uuid.UUID, points []vectorstore.Point) ([]agent.ScoredCandidate, error) {
	var order []uuid.UUID
	best := make(map[uuid.UUID]float64)

	for _, p := range points {
		if p.Payload == nil {
			continue
		}
		id, err := uuid.Parse(p.String(vectorstore.PayloadCandidateID))
		if err != nil {
			n.Logger.Warn(moduleName, "Candidate point without candidate id", map[string]interface{}{"point_id": p.ID})
			continue
		}
		prev, seen := best[id]
		if !seen {
			order = append(order, id)
			best[id] = p.Score
		} else if p.Score > prev {
			best[id] = p.Score
		}
	}

	out := make([]agent.ScoredCandidate, 0, len(order))
	for _, id := range order {
		candidate, err := n.Directory.GetCandidateByID(ctx, id, ownerID)
		if err != nil {
			return nil, apperror.Upstream("failed to load candidate", err)
		}
		if candidate == nil {
			continue
		}
		out = append(out, agent.ScoredCandidate{Candidate: *candidate, Score: best[id]})
	}
	return out, nil
}

// orderFiles returns files in the order their ids were first cited.
func orderFiles(files []agent.File, ids []uuid.UUID) []agent.File {
	byID := make(map[uuid.UUID]agent.File, len(files))
	for _, f := range files {
		byID[f.ID] = f
	}
	out := make([]agent.File, 0, len(files))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out
}
