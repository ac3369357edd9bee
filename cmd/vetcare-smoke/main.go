package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	vetcare "github.com/vetcare/vetcare"
	"github.com/vetcare/vetcare/api"
	"github.com/vetcare/vetcare/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		keys        = flag.Int("keys", 100000, "number of storage keys to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (read + navigate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "vetcare", "storage key prefix")
	)
	flag.Parse()

	if *keys <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "keys, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	store := storage.NewRedisStore(client, *prefix)

	fmt.Printf("seeding %d keys...\n", *keys)
	startSeed := time.Now()
	for i := 0; i < *keys; i++ {
		key := fmt.Sprintf("smoke-%d", i)
		if err := store.Set(ctx, key, payloadFor(i)); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	readStats := runReadPhase(ctx, store, *keys, *ops, *concurrency)

	storefront, err := buildStorefront(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client build failed: %v\n", err)
		os.Exit(1)
	}
	defer storefront.Close()

	navStats := runNavigatePhase(ctx, storefront, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("read", readStats)
	printStats("navigate", navStats)
}

func runReadPhase(ctx context.Context, store storage.Store, keys, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				key := fmt.Sprintf("smoke-%d", r.Intn(keys))
				t0 := time.Now()
				_, err := store.Get(ctx, key)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runNavigatePhase(ctx context.Context, client *vetcare.Client, ops, concurrency int) phaseStats {
	paths := []string{"/", "/login", "/register", "/api/pets", "/api/users"}

	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				path := paths[r.Intn(len(paths))]
				t0 := time.Now()
				_, err := client.Router.Navigate(ctx, path, vetcare.NavigateOptions{})
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func buildStorefront(store storage.Store) (*vetcare.Client, error) {
	cfg := vetcare.DefaultConfig()
	cfg.Metrics.Enabled = true

	views := vetcare.StaticViewSource{
		"/index.html":              "<html>home</html>",
		"/src/views/login.html":    "<html>login</html>",
		"/src/views/register.html": "<html>register</html>",
	}

	return vetcare.New().
		WithConfig(cfg).
		WithStorage(store).
		WithUsers(noDirectory{}).
		WithViewSource(views).
		WithMetricsEnabled(true).
		Build()
}

// noDirectory satisfies the user directory without any backend. The smoke
// phases never log in, so lookups are unreachable.
type noDirectory struct{}

func (noDirectory) FindUserByEmail(context.Context, string) (*api.User, error) {
	return nil, nil
}

func (noDirectory) CreateUser(_ context.Context, u api.User) (*api.User, error) {
	return &u, nil
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func payloadFor(i int) string {
	return fmt.Sprintf(`{"email":"user-%d@example.com","userType":"customer"}`, i)
}
