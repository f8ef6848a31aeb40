package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом материалов
// Опционально кеширует ответы в Redis - каталог меняется редко,
// а запрашивается на каждый расчёт цены
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client // nil = кеширование выключено
	cacheTTL   time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetMaterial получает материал по ID
func (c *Client) GetMaterial(ctx context.Context, materialID int64) (*Material, error) {
	cacheKey := fmt.Sprintf("catalog:material:%d", materialID)

	if cached := c.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	url := fmt.Sprintf("%s/internal/materials/%d", c.baseURL, materialID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid material ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrMaterialNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var material Material
	if err := json.NewDecoder(resp.Body).Decode(&material); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.toCache(ctx, cacheKey, &material)

	return &material, nil
}

// GetMaterials получает несколько материалов; отсутствие любого из них - ошибка
func (c *Client) GetMaterials(ctx context.Context, materialIDs []int64) ([]*Material, error) {
	materials := make([]*Material, 0, len(materialIDs))
	for _, id := range materialIDs {
		material, err := c.GetMaterial(ctx, id)
		if err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}
	return materials, nil
}

// GetMaterialWithGracefulDegradation получает материал с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded - вызывающий код
// может продолжить с ценой без множителя уровня
func (c *Client) GetMaterialWithGracefulDegradation(ctx context.Context, materialID int64) (*Material, error) {
	material, err := c.GetMaterial(ctx, materialID)
	if err != nil {
		// Критичную бизнес-ошибку пробрасываем дальше
		if err == ErrMaterialNotFound {
			c.log.Info("Material id=%d not found in catalog", materialID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("CatalogService unavailable, applying graceful degradation for material_id=%d: %v", materialID, err)
		return nil, fmt.Errorf("%w: material_id=%d, error=%v", ErrServiceDegraded, materialID, err)
	}

	return material, nil
}

// fromCache пытается прочитать материал из кеша; любая ошибка кеша игнорируется
func (c *Client) fromCache(ctx context.Context, key string) *Material {
	if c.cache == nil {
		return nil
	}

	data, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Catalog cache read failed for key=%s: %v", key, err)
		}
		return nil
	}

	var material Material
	if err := json.Unmarshal(data, &material); err != nil {
		c.log.Warn("Catalog cache decode failed for key=%s: %v", key, err)
		return nil
	}

	return &material
}

// toCache сохраняет материал в кеш; ошибки кеша не влияют на основной поток
func (c *Client) toCache(ctx context.Context, key string, material *Material) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(material)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Catalog cache write failed for key=%s: %v", key, err)
	}
}
