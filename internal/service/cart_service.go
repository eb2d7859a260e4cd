package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

type cartRepository interface {
	Get(ctx context.Context, studentID string) (models.Cart, error)
	Save(ctx context.Context, cart models.Cart) error
	Delete(ctx context.Context, studentID string) error
}

type enlistmentChecker interface {
	ExistsByStudent(ctx context.Context, studentID string) (bool, error)
}

// CartService manages the per-student selection cart accumulated before
// finalization. The cap check here is advisory; Finalize enforces it again as
// a hard precondition.
type CartService struct {
	carts       cartRepository
	catalog     catalogRepository
	enlistments enlistmentChecker
	logger      *zap.Logger
	maxUnits    int
}

// NewCartService constructs CartService.
func NewCartService(carts cartRepository, catalog catalogRepository, enlistments enlistmentChecker, logger *zap.Logger, maxUnits int) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{carts: carts, catalog: catalog, enlistments: enlistments, logger: logger, maxUnits: maxUnits}
}

// Get returns the student's current cart.
func (s *CartService) Get(ctx context.Context, studentID string) (models.Cart, error) {
	cart, err := s.carts.Get(ctx, studentID)
	if err != nil {
		return models.Cart{StudentID: studentID}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cart")
	}
	return cart, nil
}

// Add validates the subject/section pair and appends it to the cart.
func (s *CartService) Add(ctx context.Context, studentID, subjectCode, sectionID string) (models.Cart, error) {
	empty := models.Cart{StudentID: studentID}

	enlisted, err := s.enlistments.ExistsByStudent(ctx, studentID)
	if err != nil {
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enlistment")
	}
	if enlisted {
		return empty, appErrors.Clone(appErrors.ErrAlreadyEnlisted, "")
	}

	subject, err := s.catalog.FindByCode(ctx, subjectCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return empty, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("subject %s not found", subjectCode))
		}
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	section, err := s.catalog.FindSection(ctx, sectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return empty, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("section %s not found", sectionID))
		}
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	if section.SubjectCode != subject.Code {
		return empty, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("section %s does not belong to subject %s", sectionID, subjectCode))
	}

	cart, err := s.carts.Get(ctx, studentID)
	if err != nil {
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cart")
	}
	if cart.HasSubject(subjectCode) {
		return empty, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("subject %s is already in the cart", subjectCode))
	}
	if s.maxUnits > 0 && cart.TotalUnits()+subject.Units > s.maxUnits {
		return empty, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("adding %s would exceed the %d-unit cap", subjectCode, s.maxUnits))
	}

	updated := cart.Add(models.CartItem{
		SubjectCode: subject.Code,
		SectionID:   section.ID,
		SubjectName: subject.Name,
		Units:       subject.Units,
		SectionDay:  section.Day,
	})
	if err := s.carts.Save(ctx, updated); err != nil {
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cart")
	}
	return updated, nil
}

// Remove drops the subject/section pair from the cart.
func (s *CartService) Remove(ctx context.Context, studentID, subjectCode, sectionID string) (models.Cart, error) {
	empty := models.Cart{StudentID: studentID}
	cart, err := s.carts.Get(ctx, studentID)
	if err != nil {
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cart")
	}
	if !cart.Contains(subjectCode, sectionID) {
		return empty, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("subject %s is not in the cart", subjectCode))
	}
	updated := cart.Remove(subjectCode, sectionID)
	if err := s.carts.Save(ctx, updated); err != nil {
		return empty, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cart")
	}
	return updated, nil
}

// Clear empties the student's cart.
func (s *CartService) Clear(ctx context.Context, studentID string) error {
	if err := s.carts.Delete(ctx, studentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear cart")
	}
	return nil
}
