package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/observability"
	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/server"
	"github.com/matzehuels/colgraph/pkg/store"
)

// Environment variables read by serve. Flags take precedence.
const (
	envAddr        = "COLGRAPH_ADDR"
	envRedisAddr   = "COLGRAPH_REDIS_ADDR"
	envRedisPass   = "COLGRAPH_REDIS_PASSWORD"
	envCachePrefix = "COLGRAPH_CACHE_PREFIX"
	envMongoURI    = "COLGRAPH_MONGO_URI"
	envMongoDB     = "COLGRAPH_MONGO_DB"
	envStoreDir    = "COLGRAPH_STORE_DIR"
)

const connectTimeout = 10 * time.Second

// serveOpts holds the configuration for the serve command.
type serveOpts struct {
	addr        string
	redisAddr   string
	redisPass   string
	cachePrefix string
	mongoURI    string
	mongoDB     string
	storeDir    string
	envFile     string
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

Configuration is read from the environment (and a .env file when present):

  COLGRAPH_ADDR            listen address (default :8080)
  COLGRAPH_REDIS_ADDR      Redis address for the render cache
  COLGRAPH_REDIS_PASSWORD  Redis password
  COLGRAPH_CACHE_PREFIX    prefix for cache keys in a shared Redis
  COLGRAPH_MONGO_URI       MongoDB URI for stored charts
  COLGRAPH_MONGO_DB        MongoDB database (default colgraph)
  COLGRAPH_STORE_DIR       directory for stored charts when MongoDB is not set

Flags override environment values. Without Redis the render cache lives in
the user cache directory; without MongoDB or a store directory, stored charts
are kept in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadEnv(cmd); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the render cache")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "prefix for cache keys")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for stored charts")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", store.DefaultMongoDatabase, "MongoDB database")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for stored charts")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")

	return cmd
}

// loadEnv fills options from the environment for every flag not set on the
// command line. A missing dotenv file is not an error.
func (o *serveOpts) loadEnv(cmd *cobra.Command) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	fs := cmd.Flags()
	fromEnv := func(flag, env string, dst *string) {
		if fs.Changed(flag) {
			return
		}
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	fromEnv("addr", envAddr, &o.addr)
	fromEnv("redis-addr", envRedisAddr, &o.redisAddr)
	fromEnv("cache-prefix", envCachePrefix, &o.cachePrefix)
	fromEnv("mongo-uri", envMongoURI, &o.mongoURI)
	fromEnv("mongo-db", envMongoDB, &o.mongoDB)
	fromEnv("store-dir", envStoreDir, &o.storeDir)
	o.redisPass = os.Getenv(envRedisPass)
	return nil
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)
	observability.Register(observability.NewLogHooks(logger))

	rc, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.cachePrefix)
	}
	runner := pipeline.NewRunner(rc, keyer, logger)
	defer runner.Close()

	st, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	printInfo("Serving on %s", opts.addr)
	return server.New(server.Config{
		Runner: runner,
		Store:  st,
		Logger: logger,
	}).ListenAndServe(ctx, opts.addr)
}

// serveCache picks Redis when configured and the file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.redisAddr == "" {
		printDetail("Cache: %s", "local files")
		return newCache(false)
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: opts.redisAddr, Password: opts.redisPass})
	if err != nil {
		return nil, err
	}
	printDetail("Cache: redis at %s", opts.redisAddr)
	return rc, nil
}

// serveStore picks MongoDB, then a store directory, then memory.
func serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		s, err := store.NewMongoStore(ctx, store.MongoOptions{URI: opts.mongoURI, Database: opts.mongoDB})
		if err != nil {
			return nil, err
		}
		printDetail("Charts: mongodb database %s", opts.mongoDB)
		return s, nil
	case opts.storeDir != "":
		s, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, err
		}
		printDetail("Charts: %s", s.Path())
		return s, nil
	default:
		printWarning("Stored charts are kept in memory and lost on restart")
		return store.NewMemoryStore(), nil
	}
}
