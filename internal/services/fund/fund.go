// Package services содержит логику бизнес-уровня каталога фондов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// FundRepository описывает контракт для работы с фондами в базе данных.
type FundRepository interface {
	CreateFund(ctx context.Context, fund models.Fund) (string, error)
	GetFund(ctx context.Context, fundUID string) (*models.Fund, error)
	ListFunds(ctx context.Context) ([]*models.Fund, error)
	UpdateFund(ctx context.Context, fund models.Fund) (int64, error)
}

// Cache описывает контракт кэша каталога.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// FundService отвечает за каталог фондов: чтение через кэш,
// административное создание и обновление, начальное наполнение.
type FundService struct {
	repo  FundRepository
	cache Cache
	log   *slog.Logger
}

// NewFundService создает новый экземпляр FundService.
func NewFundService(repo FundRepository, cache Cache, log *slog.Logger) *FundService {
	return &FundService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Read возвращает фонд по UID, сначала обращаясь к кэшу.
func (s *FundService) Read(ctx context.Context, fundUID string) (*models.Fund, error) {
	var result *models.Fund
	cacheKey := fmt.Sprintf("fund:%s", fundUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read fund from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetFund(ctx, fundUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache fund", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает все фонды каталога.
func (s *FundService) List(ctx context.Context) ([]*models.Fund, error) {
	funds, err := s.repo.ListFunds(ctx)
	if err != nil {
		return nil, err
	}
	return funds, nil
}

// Create добавляет новый фонд в каталог.
func (s *FundService) Create(ctx context.Context, req models.DummyFund) (string, error) {
	fund := models.Fund{
		UID:           req.UID,
		Name:          req.Name,
		Category:      req.Category,
		MinimumAmount: decimal.NewFromFloat(req.MinimumAmount),
		IsActive:      req.IsActive,
	}
	uid, err := s.repo.CreateFund(ctx, fund)
	if err != nil {
		return "", err
	}
	s.log.Info("created new fund", slog.String("uid", uid))
	return uid, nil
}

// Update изменяет фонд и сбрасывает его запись в кэше.
func (s *FundService) Update(ctx context.Context, req models.DummyFund) (int64, error) {
	fund := models.Fund{
		UID:           req.UID,
		Name:          req.Name,
		Category:      req.Category,
		MinimumAmount: decimal.NewFromFloat(req.MinimumAmount),
		IsActive:      req.IsActive,
	}
	count, err := s.repo.UpdateFund(ctx, fund)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, models.ErrFundNotFound
	}

	cacheKey := fmt.Sprintf("fund:%s", fund.UID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate fund in cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// defaultFunds начальный каталог фондов BTG Pactual.
func defaultFunds() []models.Fund {
	return []models.Fund{
		{
			UID:           "FPV_BTG_PACTUAL_RECAUDADORA",
			Name:          "FPV_BTG_PACTUAL_RECAUDADORA",
			Category:      models.CategoryFPV,
			MinimumAmount: decimal.NewFromInt(75000),
			IsActive:      true,
		},
		{
			UID:           "FPV_BTG_PACTUAL_ECOPETROL",
			Name:          "FPV_BTG_PACTUAL_ECOPETROL",
			Category:      models.CategoryFPV,
			MinimumAmount: decimal.NewFromInt(125000),
			IsActive:      true,
		},
		{
			UID:           "DEUDAPRIVADA",
			Name:          "DEUDAPRIVADA",
			Category:      models.CategoryDeudaPrivada,
			MinimumAmount: decimal.NewFromInt(50000),
			IsActive:      true,
		},
		{
			UID:           "FDO-ACCIONES",
			Name:          "FDO-ACCIONES",
			Category:      models.CategoryFIC,
			MinimumAmount: decimal.NewFromInt(250000),
			IsActive:      true,
		},
		{
			UID:           "FPV_BTG_PACTUAL_DINAMICA",
			Name:          "FPV_BTG_PACTUAL_DINAMICA",
			Category:      models.CategoryFPV,
			MinimumAmount: decimal.NewFromInt(100000),
			IsActive:      true,
		},
	}
}

// Seed наполняет каталог начальным набором фондов. Повторный запуск
// безопасен: уже существующие фонды пропускаются, вставка фонда,
// успевшего появиться между проверкой и вставкой, не считается ошибкой.
func (s *FundService) Seed(ctx context.Context) error {
	for _, fund := range defaultFunds() {
		_, err := s.repo.GetFund(ctx, fund.UID)
		if err == nil {
			continue
		}
		if !errors.Is(err, models.ErrFundNotFound) {
			return err
		}
		if _, err := s.repo.CreateFund(ctx, fund); err != nil {
			if errors.Is(err, models.ErrFundAlreadyExists) {
				continue
			}
			return err
		}
		s.log.Info("seeded fund", slog.String("uid", fund.UID))
	}
	return nil
}
