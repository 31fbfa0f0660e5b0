package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/tu-usuario/stock-advisor/internal/application/ports"
	"github.com/tu-usuario/stock-advisor/pkg/config"
	"github.com/tu-usuario/stock-advisor/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa TrendService.
var _ ports.TrendService = (*Client)(nil)

const defaultBaseURL = "https://serpapi.com/search"

// Pausa aleatoria entre llamadas remotas consecutivas, para respetar los
// límites de SerpAPI en corridas bulk.
const (
	bulkDelayMin = 6 * time.Second
	bulkDelayMax = 12 * time.Second
)

// Client adaptador de Google Trends vía SerpAPI con caché local en JSON.
// Cumple el contrato de TrendService: nunca devuelve error, cualquier falla
// degrada a score 0.0 y el pronóstico sigue sin ajuste.
type Client struct {
	apiKey  string
	geo     string
	gprop   string
	baseURL string
	ttl     time.Duration
	enabled bool

	cache      *scoreCache
	httpClient *http.Client
	log        *logger.Logger

	// inyectables para tests
	now       func() time.Time
	sleep     func(time.Duration)
	randFloat func() float64
}

// NewClient construye el cliente desde la configuración. Sin API key (o con
// Enabled en false) queda deshabilitado: responde 0.0 sin tocar la red ni el
// caché.
func NewClient(cfg config.TrendsConfig, log *logger.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		geo:     cfg.Geo,
		gprop:   cfg.GProp,
		baseURL: defaultBaseURL,
		ttl:     time.Duration(cfg.TTLHours) * time.Hour,
		enabled: cfg.Enabled && cfg.APIKey != "",
		cache:   loadCache(cfg.CachePath),
		httpClient: &http.Client{
			Timeout: 10 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
		log:       log,
		now:       time.Now,
		sleep:     time.Sleep,
		randFloat: rand.Float64,
	}
}

// Enabled informa si el cliente puede hacer llamadas remotas.
func (c *Client) Enabled() bool {
	return c.enabled
}

// GetTrendScore devuelve el score 0-100 para el keyword. Orden de resolución:
// caché fresco, llamada remota, 0.0. Un 0.0 remoto no se cachea para que el
// próximo intento vuelva a preguntar.
func (c *Client) GetTrendScore(ctx context.Context, keyword string) float64 {
	score, _ := c.resolve(ctx, keyword)
	return score
}

// GetTrendScoresBulk resuelve los keywords en serie, con una pausa aleatoria
// después de cada llamada que sí fue a la red. Los aciertos de caché no pausan.
func (c *Client) GetTrendScoresBulk(ctx context.Context, keywords []string) map[string]float64 {
	out := make(map[string]float64, len(keywords))
	for _, keyword := range keywords {
		score, remote := c.resolve(ctx, keyword)
		out[keyword] = score
		if remote {
			delay := bulkDelayMin + time.Duration(c.randFloat()*float64(bulkDelayMax-bulkDelayMin))
			c.sleep(delay)
		}
	}
	return out
}

// resolve aplica la cadena caché → remoto → 0.0. El booleano indica si hubo
// llamada remota.
func (c *Client) resolve(ctx context.Context, keyword string) (float64, bool) {
	if !c.enabled {
		return 0, false
	}

	if score, ok := c.cache.get(keyword, c.ttl, c.now()); ok {
		return score, false
	}

	score, err := c.fetch(ctx, keyword)
	if err != nil {
		c.log.Warn().Err(err).Str("keyword", keyword).Msg("no se pudo obtener el score de tendencia")
		return 0, true
	}
	if score <= 0 {
		c.log.Debug().Str("keyword", keyword).Msg("sin datos de tendencia para el keyword")
		return 0, true
	}

	if err := c.cache.put(keyword, score, c.now()); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo persistir el caché de tendencias")
	}
	return score, true
}

// serpResponse es la porción de la respuesta de SerpAPI que nos interesa.
type serpResponse struct {
	InterestOverTime []struct {
		Value float64 `json:"value"`
	} `json:"interest_over_time"`
	Error string `json:"error"`
}

// fetch consulta el endpoint google_trends y promedia la serie de interés.
func (c *Client) fetch(ctx context.Context, keyword string) (float64, error) {
	params := url.Values{}
	params.Set("engine", "google_trends")
	params.Set("q", keyword)
	params.Set("geo", c.geo)
	params.Set("gprop", c.gprop)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("armar request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("llamar a SerpAPI: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("SerpAPI respondió %d", resp.StatusCode)
	}

	var data serpResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("decodificar respuesta: %w", err)
	}
	if data.Error != "" {
		return 0, fmt.Errorf("SerpAPI: %s", data.Error)
	}
	if len(data.InterestOverTime) == 0 {
		return 0, nil
	}

	var sum float64
	for _, p := range data.InterestOverTime {
		sum += p.Value
	}
	avg := sum / float64(len(data.InterestOverTime))
	return math.Round(avg*100) / 100, nil
}
