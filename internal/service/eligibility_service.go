package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

type catalogRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Subject, error)
	ListByProgramAndSemester(ctx context.Context, program, semester string) ([]models.Subject, error)
	ListByCodesAndSemester(ctx context.Context, codes []string, semester string) ([]models.Subject, error)
	ListRequisitesFor(ctx context.Context, codes []string) ([]models.Requisite, error)
	ListSectionsFor(ctx context.Context, codes []string) ([]models.Section, error)
	FindSection(ctx context.Context, sectionID string) (*models.Section, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// EligibilityService resolves the set of subjects a student may enlist in for
// a semester: the subjects of their own program plus cross-program subjects
// reachable through prerequisite/corequisite relations.
type EligibilityService struct {
	catalog  catalogRepository
	students studentReader
	cache    *CacheService
	logger   *zap.Logger
}

// NewEligibilityService constructs EligibilityService.
func NewEligibilityService(catalog catalogRepository, students studentReader, cache *CacheService, logger *zap.Logger) *EligibilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityService{catalog: catalog, students: students, cache: cache, logger: logger}
}

// Resolve returns the eligible subjects for the student in the semester,
// deduplicated by subject code and ordered by subject code ascending.
func (s *EligibilityService) Resolve(ctx context.Context, studentID, semester string) ([]models.EligibleSubject, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	cacheKey := fmt.Sprintf("eligible:%s:%s", student.Program, semester)
	var cached []models.EligibleSubject
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	result, err := s.resolveForProgram(ctx, student.Program, semester)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, 0); err != nil {
		s.logger.Warn("failed to cache eligibility result", zap.String("key", cacheKey), zap.Error(err))
	}
	return result, nil
}

func (s *EligibilityService) resolveForProgram(ctx context.Context, program, semester string) ([]models.EligibleSubject, error) {
	primary, err := s.catalog.ListByProgramAndSemester(ctx, program, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program subjects")
	}

	primaryCodes := make([]string, 0, len(primary))
	inResult := make(map[string]bool, len(primary))
	for _, subject := range primary {
		if inResult[subject.Code] {
			continue
		}
		inResult[subject.Code] = true
		primaryCodes = append(primaryCodes, subject.Code)
	}

	primaryRequisites, err := s.catalog.ListRequisitesFor(ctx, primaryCodes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisites")
	}

	// Requisite closure: required subjects outside the primary set become
	// candidates; only those offered this semester and owned by a different
	// program join the result, flagged cross-program.
	var candidateCodes []string
	seenCandidate := make(map[string]bool)
	for _, req := range primaryRequisites {
		if inResult[req.RequiredCode] || seenCandidate[req.RequiredCode] {
			continue
		}
		seenCandidate[req.RequiredCode] = true
		candidateCodes = append(candidateCodes, req.RequiredCode)
	}

	var cross []models.Subject
	if len(candidateCodes) > 0 {
		offered, err := s.catalog.ListByCodesAndSemester(ctx, candidateCodes, semester)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cross-program subjects")
		}
		for _, subject := range offered {
			if subject.Program == program || inResult[subject.Code] {
				continue
			}
			inResult[subject.Code] = true
			cross = append(cross, subject)
		}
	}

	combined := make([]models.EligibleSubject, 0, len(primary)+len(cross))
	added := make(map[string]bool, len(primary)+len(cross))
	for _, subject := range primary {
		if added[subject.Code] {
			continue
		}
		added[subject.Code] = true
		combined = append(combined, models.EligibleSubject{Subject: subject})
	}
	for _, subject := range cross {
		if added[subject.Code] {
			continue
		}
		added[subject.Code] = true
		combined = append(combined, models.EligibleSubject{Subject: subject, CrossProgram: true})
	}

	allCodes := make([]string, 0, len(combined))
	for _, subject := range combined {
		allCodes = append(allCodes, subject.Code)
	}

	requisites, err := s.catalog.ListRequisitesFor(ctx, allCodes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requisites")
	}
	sections, err := s.catalog.ListSectionsFor(ctx, allCodes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sections")
	}

	prereqsByCode := make(map[string][]models.Requisite)
	coreqsByCode := make(map[string][]models.Requisite)
	for _, req := range requisites {
		switch req.Kind {
		case models.RequisiteCo:
			coreqsByCode[req.SubjectCode] = append(coreqsByCode[req.SubjectCode], req)
		default:
			prereqsByCode[req.SubjectCode] = append(prereqsByCode[req.SubjectCode], req)
		}
	}
	sectionsByCode := make(map[string][]models.Section)
	for _, section := range sections {
		sectionsByCode[section.SubjectCode] = append(sectionsByCode[section.SubjectCode], section)
	}

	for i := range combined {
		code := combined[i].Code
		combined[i].Prerequisites = prereqsByCode[code]
		combined[i].Corequisites = coreqsByCode[code]
		combined[i].Sections = sectionsByCode[code]
	}

	sort.Slice(combined, func(i, j int) bool {
		return combined[i].Code < combined[j].Code
	})

	return combined, nil
}
