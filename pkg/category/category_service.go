package category

import (
	"context"
	"errors"
	"strings"

	"foodloss-backend/domain"
	"foodloss-backend/entities"

	"gorm.io/gorm"
)

type (
	CategoryService interface {
		ListCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		CreateCategory(ctx context.Context, identity domain.Identity, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		UpdateCategory(ctx context.Context, identity domain.Identity, id string, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func toCategoryResponse(c *entities.Category) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Description:  c.Description,
		IconURL:      c.IconURL,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.CategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, toCategoryResponse(&categories[i]))
	}
	return res, nil
}

func (s *categoryService) ensureUniqueName(ctx context.Context, name string) error {
	exists, err := s.categoryRepository.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrCategoryAlreadyExists
	}
	return nil
}

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrCategoryAlreadyExists
	}
	return err
}

func (s *categoryService) CreateCategory(ctx context.Context, identity domain.Identity, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	if !identity.HasRole(domain.RoleAdmin) {
		return domain.CategoryResponse{}, domain.ErrForbidden
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CategoryResponse{}, domain.ErrNameRequired
	}
	if err := s.ensureUniqueName(ctx, name); err != nil {
		return domain.CategoryResponse{}, err
	}

	category := &entities.Category{
		Name:         name,
		Description:  req.Description,
		IconURL:      req.IconURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if err := s.categoryRepository.Create(ctx, category); err != nil {
		return domain.CategoryResponse{}, duplicate(err)
	}
	return toCategoryResponse(category), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, identity domain.Identity, id string, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error) {
	if !identity.HasRole(domain.RoleAdmin) {
		return domain.CategoryResponse{}, domain.ErrForbidden
	}
	category, err := s.categoryRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CategoryResponse{}, domain.ErrCategoryNotFound
		}
		return domain.CategoryResponse{}, err
	}

	if req.Name.Present {
		name := strings.TrimSpace(req.Name.Value)
		if req.Name.Null || name == "" {
			return domain.CategoryResponse{}, domain.ErrNameRequired
		}
		if !strings.EqualFold(name, category.Name) {
			if err := s.ensureUniqueName(ctx, name); err != nil {
				return domain.CategoryResponse{}, err
			}
		}
		category.Name = name
	}
	if req.Description.Present {
		category.Description = req.Description.Value
	}
	if req.IconURL.Present {
		category.IconURL = req.IconURL.Value
	}
	if req.DisplayOrder.Set() {
		category.DisplayOrder = req.DisplayOrder.Value
	}
	if req.IsActive.Set() {
		category.IsActive = req.IsActive.Value
	}

	if err := s.categoryRepository.Save(ctx, category); err != nil {
		return domain.CategoryResponse{}, duplicate(err)
	}
	return toCategoryResponse(category), nil
}
