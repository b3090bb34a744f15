package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/db"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type ReviewService interface {
	Create(ctx context.Context, packageID uuid.UUID, input ReviewInput) (*types.SkillReview, error)
	Update(ctx context.Context, reviewID uuid.UUID, input ReviewInput) (*types.SkillReview, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
	ListByPackage(ctx context.Context, packageID uuid.UUID, sort repos.ReviewSort, limit, offset int) ([]*types.SkillReview, int64, error)
}

type reviewService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  repos.ReviewRepo
	packageRepo repos.PackageRepo
	catalog     CatalogService
}

func NewReviewService(
	gdb *gorm.DB,
	log *logger.Logger,
	reviewRepo repos.ReviewRepo,
	packageRepo repos.PackageRepo,
	catalog CatalogService,
) ReviewService {
	return &reviewService{
		db:          gdb,
		log:         log.With("service", "ReviewService"),
		reviewRepo:  reviewRepo,
		packageRepo: packageRepo,
		catalog:     catalog,
	}
}

func validateReviewInput(input *ReviewInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Comment = strings.TrimSpace(input.Comment)
	if input.Rating < 1 || input.Rating > 5 {
		return apierr.New(apierr.KindValidation, "rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(input.Title) > types.ReviewTitleMaxLen {
		return apierr.New(apierr.KindValidation, "title must be at most %d characters", types.ReviewTitleMaxLen)
	}
	if utf8.RuneCountInString(input.Comment) > types.ReviewCommentMaxLen {
		return apierr.New(apierr.KindValidation, "comment must be at most %d characters", types.ReviewCommentMaxLen)
	}
	return nil
}

func (rs *reviewService) Create(ctx context.Context, packageID uuid.UUID, input ReviewInput) (*types.SkillReview, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	if _, err := rs.packageRepo.GetByID(ctx, nil, packageID); err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "package %s not found", packageID)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load package: %w", err))
	}

	// Fast path; the partial unique index backstops the race.
	if _, err := rs.reviewRepo.GetByPackageAuthor(ctx, nil, packageID, rd.UserID); err == nil {
		return nil, apierr.New(apierr.KindConflict, "you already reviewed this package; update it instead")
	} else if !db.IsNotFound(err) {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("check existing review: %w", err))
	}

	now := time.Now().UTC()
	review := &types.SkillReview{
		ID:        uuid.New(),
		PackageID: packageID,
		AuthorID:  rd.UserID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cerr := rs.reviewRepo.Create(ctx, tx, review); cerr != nil {
			return cerr
		}
		return rs.catalog.RecomputeRating(ctx, tx, packageID)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.New(apierr.KindConflict, "you already reviewed this package; update it instead")
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("create review: %w", err))
	}
	return review, nil
}

func (rs *reviewService) Update(ctx context.Context, reviewID uuid.UUID, input ReviewInput) (*types.SkillReview, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	review, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "review %s not found", reviewID)
		}
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("load review: %w", err))
	}
	if review.AuthorID != rd.UserID && rd.Role != types.RoleAdmin {
		return nil, apierr.New(apierr.KindForbidden, "only the author or an admin may update a review")
	}

	review.Rating = input.Rating
	review.Title = input.Title
	review.Comment = input.Comment
	review.UpdatedAt = time.Now().UTC()

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uerr := rs.reviewRepo.Update(ctx, tx, review); uerr != nil {
			return uerr
		}
		return rs.catalog.RecomputeRating(ctx, tx, review.PackageID)
	})
	if err != nil {
		return nil, apierr.Wrap(apierr.KindSystem, fmt.Errorf("update review: %w", err))
	}
	return review, nil
}

func (rs *reviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(apierr.KindUnauthenticated, "not authenticated")
	}

	review, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		if db.IsNotFound(err) {
			return apierr.New(apierr.KindNotFound, "review %s not found", reviewID)
		}
		return apierr.Wrap(apierr.KindSystem, fmt.Errorf("load review: %w", err))
	}
	if review.AuthorID != rd.UserID && rd.Role != types.RoleAdmin {
		return apierr.New(apierr.KindForbidden, "only the author or an admin may delete a review")
	}

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if derr := rs.reviewRepo.SoftDelete(ctx, tx, reviewID); derr != nil {
			return derr
		}
		return rs.catalog.RecomputeRating(ctx, tx, review.PackageID)
	})
	if err != nil {
		return apierr.Wrap(apierr.KindSystem, fmt.Errorf("delete review: %w", err))
	}
	return nil
}

func (rs *reviewService) ListByPackage(ctx context.Context, packageID uuid.UUID, sort repos.ReviewSort, limit, offset int) ([]*types.SkillReview, int64, error) {
	results, total, err := rs.reviewRepo.ListByPackage(ctx, nil, packageID, sort, limit, offset)
	if err != nil {
		return nil, 0, apierr.Wrap(apierr.KindSystem, fmt.Errorf("list reviews: %w", err))
	}
	return results, total, nil
}
