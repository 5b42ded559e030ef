package store

import (
	"context"
	"errors"
	"strings"

	"foodloss-backend/domain"
	"foodloss-backend/entities"
	"foodloss-backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	StoreService interface {
		RegisterStore(ctx context.Context, identity domain.Identity, req domain.RegisterStoreRequest) (domain.StoreResponse, error)
		GetStore(ctx context.Context, id string) (domain.StoreResponse, error)
		ListStores(ctx context.Context, p domain.Pagination) (domain.StoreListResponse, error)
		UpdateStore(ctx context.Context, identity domain.Identity, id string, req domain.UpdateStoreRequest) (domain.StoreResponse, error)
		UploadStoreImage(ctx context.Context, identity domain.Identity, id string, req domain.UploadStoreImageRequest) (domain.StoreResponse, error)
		DeleteStore(ctx context.Context, identity domain.Identity, id string) error
	}

	storeService struct {
		storeRepository StoreRepository
		s3              storage.AwsS3
	}
)

func NewStoreService(storeRepository StoreRepository, s3 storage.AwsS3) StoreService {
	return &storeService{
		storeRepository: storeRepository,
		s3:              s3,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrStoreNotFound
	}
	return err
}

func toBusinessHours(in map[string]domain.DayHours) entities.BusinessHours {
	if in == nil {
		return nil
	}
	out := make(entities.BusinessHours, len(in))
	for day, h := range in {
		out[strings.ToLower(day)] = entities.DayHours{OpenTime: h.OpenTime, CloseTime: h.CloseTime, IsOpen: h.IsOpen}
	}
	return out
}

func ToStoreResponse(s *entities.Store) domain.StoreResponse {
	hours := make(map[string]domain.DayHours, len(s.BusinessHours))
	for day, h := range s.BusinessHours {
		hours[day] = domain.DayHours{OpenTime: h.OpenTime, CloseTime: h.CloseTime, IsOpen: h.IsOpen}
	}
	categories := []string(s.Categories)
	if categories == nil {
		categories = []string{}
	}
	return domain.StoreResponse{
		ID:            s.ID.String(),
		UserID:        s.UserID.String(),
		Name:          s.Name,
		Description:   s.Description,
		Address:       s.Address,
		ImageURL:      s.ImageURL,
		PhoneNumber:   s.PhoneNumber,
		Website:       s.Website,
		BusinessHours: hours,
		Categories:    categories,
		IsActive:      s.IsActive,
		IsVerified:    s.IsVerified,
		CreatedAt:     s.CreatedAt,
	}
}

func (s *storeService) RegisterStore(ctx context.Context, identity domain.Identity, req domain.RegisterStoreRequest) (domain.StoreResponse, error) {
	if !identity.HasRole(domain.RoleStore) {
		return domain.StoreResponse{}, domain.ErrForbidden
	}
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return domain.StoreResponse{}, domain.ErrParseUUID
	}

	exists, err := s.storeRepository.ExistsByUserID(ctx, identity.UserID)
	if err != nil {
		return domain.StoreResponse{}, err
	}
	if exists {
		return domain.StoreResponse{}, domain.ErrStoreAlreadyExists
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.StoreResponse{}, domain.ErrNameRequired
	}

	store := &entities.Store{
		UserID:        userID,
		Name:          name,
		Description:   req.Description,
		Address:       req.Address,
		PhoneNumber:   req.PhoneNumber,
		Website:       req.Website,
		BusinessHours: toBusinessHours(req.BusinessHours),
		Categories:    entities.StringList(req.Categories),
		IsActive:      true,
		IsVerified:    false,
	}
	if err := s.storeRepository.Create(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.StoreResponse{}, domain.ErrStoreAlreadyExists
		}
		return domain.StoreResponse{}, err
	}
	return ToStoreResponse(store), nil
}

func (s *storeService) GetStore(ctx context.Context, id string) (domain.StoreResponse, error) {
	store, err := s.storeRepository.GetByID(ctx, id)
	if err != nil {
		return domain.StoreResponse{}, notFound(err)
	}
	return ToStoreResponse(store), nil
}

func (s *storeService) ListStores(ctx context.Context, p domain.Pagination) (domain.StoreListResponse, error) {
	stores, total, err := s.storeRepository.ListActive(ctx, p)
	if err != nil {
		return domain.StoreListResponse{}, err
	}
	items := make([]domain.StoreResponse, 0, len(stores))
	for i := range stores {
		items = append(items, ToStoreResponse(&stores[i]))
	}
	return domain.StoreListResponse{Items: items, Pagination: p.Response(total)}, nil
}

// owned loads a store the caller may modify. Admins pass when allowAdmin is set.
func (s *storeService) owned(ctx context.Context, identity domain.Identity, id string, allowAdmin bool) (*entities.Store, error) {
	store, err := s.storeRepository.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if store.UserID.String() == identity.UserID {
		return store, nil
	}
	if allowAdmin && identity.HasRole(domain.RoleAdmin) {
		return store, nil
	}
	return nil, domain.ErrUnauthorizedStoreAccess
}

func (s *storeService) UpdateStore(ctx context.Context, identity domain.Identity, id string, req domain.UpdateStoreRequest) (domain.StoreResponse, error) {
	store, err := s.owned(ctx, identity, id, false)
	if err != nil {
		return domain.StoreResponse{}, err
	}

	if req.Name.Present {
		name := strings.TrimSpace(req.Name.Value)
		if req.Name.Null || name == "" {
			return domain.StoreResponse{}, domain.ErrNameRequired
		}
		store.Name = name
	}
	if req.Description.Present {
		store.Description = req.Description.Value
	}
	if req.Address.Present {
		store.Address = req.Address.Value
	}
	if req.PhoneNumber.Present {
		store.PhoneNumber = req.PhoneNumber.Value
	}
	if req.Website.Present {
		store.Website = req.Website.Value
	}
	if req.BusinessHours.Present {
		store.BusinessHours = toBusinessHours(req.BusinessHours.Value)
	}
	if req.Categories.Present {
		store.Categories = entities.StringList(req.Categories.Value)
	}
	if req.IsActive.Set() {
		store.IsActive = req.IsActive.Value
	}

	if err := s.storeRepository.Save(ctx, store); err != nil {
		return domain.StoreResponse{}, err
	}
	return ToStoreResponse(store), nil
}

func (s *storeService) UploadStoreImage(ctx context.Context, identity domain.Identity, id string, req domain.UploadStoreImageRequest) (domain.StoreResponse, error) {
	store, err := s.owned(ctx, identity, id, false)
	if err != nil {
		return domain.StoreResponse{}, err
	}

	var objectKey string
	if store.ImageURL != "" {
		objectKey = s.s3.GetObjectKeyFromLink(store.ImageURL)
	}
	if objectKey != "" {
		objectKey, err = s.s3.UpdateFile(ctx, objectKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, "store-"+store.ID.String(), req.Image, "stores", storage.AllowImage...)
	}
	if err != nil {
		return domain.StoreResponse{}, err
	}

	store.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.storeRepository.Save(ctx, store); err != nil {
		return domain.StoreResponse{}, err
	}
	return ToStoreResponse(store), nil
}

func (s *storeService) DeleteStore(ctx context.Context, identity domain.Identity, id string) error {
	store, err := s.owned(ctx, identity, id, true)
	if err != nil {
		return err
	}

	if err := s.storeRepository.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	if store.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(store.ImageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				log.Warnf("store image %s not removed: %v", key, err)
			}
		}
	}
	return nil
}
