package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

// SubjectService serves read-only subject catalog lookups.
type SubjectService struct {
	catalog catalogRepository
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(catalog catalogRepository) *SubjectService {
	return &SubjectService{catalog: catalog}
}

// Details returns the subject with its requisite lists and sections.
func (s *SubjectService) Details(ctx context.Context, code string) (*models.SubjectDetails, error) {
	subject, err := s.catalog.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("subject %s not found", code))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	requisites, err := s.catalog.ListRequisitesFor(ctx, []string{subject.Code})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisites")
	}
	sections, err := s.catalog.ListSectionsFor(ctx, []string{subject.Code})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sections")
	}

	details := &models.SubjectDetails{Subject: *subject, Sections: sections}
	for _, req := range requisites {
		if req.Kind == models.RequisiteCo {
			details.Corequisites = append(details.Corequisites, req)
		} else {
			details.Prerequisites = append(details.Prerequisites, req)
		}
	}
	return details, nil
}
