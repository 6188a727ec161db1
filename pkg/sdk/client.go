package solrgeo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/solrgeo/internal/db"
	"github.com/kailas-cloud/solrgeo/internal/db/memory"
	dbRedis "github.com/kailas-cloud/solrgeo/internal/db/redis"
	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter/geodist"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/request"
	attributerepo "github.com/kailas-cloud/solrgeo/internal/repository/attribute"
	attributeuc "github.com/kailas-cloud/solrgeo/internal/usecase/attribute"
	"github.com/kailas-cloud/solrgeo/internal/usecase/fieldname"
	healthuc "github.com/kailas-cloud/solrgeo/internal/usecase/health"
	queryuc "github.com/kailas-cloud/solrgeo/internal/usecase/query"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type attributeUseCase interface {
	Upsert(ctx context.Context, class, identifier, datatype string) (schema.Attribute, bool, error)
	Get(ctx context.Context, class, identifier string) (schema.Attribute, error)
	List(ctx context.Context, class string) ([]schema.Attribute, error)
	Delete(ctx context.Context, class, identifier string) error
	FieldName(a schema.Attribute) string
}

type queryUseCase interface {
	Build(ctx context.Context, req request.Request) (queryuc.Result, error)
	Filters() []string
}

type fieldResolver interface {
	ResolveFieldName(ctx context.Context, logicalID string) (string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the solrgeo SDK entry point.
type Client struct {
	store     db.Store
	attrSvc   attributeUseCase
	querySvc  queryUseCase
	resolver  fieldResolver
	healthSvc healthUseCase
	obs       *observer
}

// New creates a solrgeo Client and connects to the attribute store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("solrgeo: attribute store required (use WithValkey, WithRedis or WithMemory)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("solrgeo: store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("solrgeo: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("solrgeo: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	datatypes, err := schema.NewDatatypeMap(cfg.datatypes, cfg.fallback)
	if err != nil {
		return nil, fmt.Errorf("solrgeo: %w", err)
	}

	attrRepo := attributerepo.New(store, cfg.keyPrefix)
	attrSvc := attributeuc.New(attrRepo, datatypes, obs.zapLogger())
	resolver := fieldname.New(attrRepo, datatypes, nil)

	registry, err := extfilter.NewRegistry(geodist.New(resolver))
	if err != nil {
		return nil, fmt.Errorf("solrgeo: register filters: %w", err)
	}

	policy := queryuc.PolicyWarn
	if cfg.reject {
		policy = queryuc.PolicyReject
	}
	querySvc := queryuc.New(registry, policy, obs.filterCounter(), obs.zapLogger())

	return &Client{
		store:     store,
		attrSvc:   attrSvc,
		querySvc:  querySvc,
		resolver:  resolver,
		healthSvc: healthuc.New(store, registry),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks attribute store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Attributes returns the attribute schema service.
func (c *Client) Attributes() *AttributeService {
	return &AttributeService{svc: c.attrSvc, obs: c.obs}
}

// Query starts a fluent query.
func (c *Client) Query() *QueryBuilder {
	return &QueryBuilder{client: c}
}
