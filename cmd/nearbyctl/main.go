package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/infrastructure/seoulapi"
	"github.com/nearby-service/internal/pkg/logger"
	"github.com/nearby-service/internal/repository/cache"
	"github.com/nearby-service/internal/repository/postgres"
	redisRepo "github.com/nearby-service/internal/repository/redis"
	"github.com/nearby-service/internal/usecase"
)

var (
	envFile  string
	logLevel string
	kindFlag string
	modeFlag string

	sampleLimit int
	searchLimit int
	nearLimit   int
)

var rootCmd = &cobra.Command{
	Use:           "nearbyctl",
	Short:         "Operator tool for the nearby service database",
	Long:          `Inspect fuel station and parking lot data in PostgreSQL and run the parking sync by hand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts per entity kind",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a few parking lots",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

var nearCmd = &cobra.Command{
	Use:   "near <lat> <lng> <km>",
	Short: "Rank entities within radius of a point",
	Args:  cobra.ExactArgs(3),
	RunE:  runNear,
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find parking lots by name or address",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync parking lots from the Seoul open data API",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh <kind>",
	Short: "Ask running API instances to reload a snapshot",
	Long:  `Publish a SnapshotRefreshed event without syncing, e.g. after editing rows by hand.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRefresh,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "Env file with DB_* and REDIS_* settings")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	sampleCmd.Flags().IntVarP(&sampleLimit, "limit", "n", 5, "Number of rows")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Max number of rows")

	nearCmd.Flags().StringVarP(&kindFlag, "kind", "k", "parking", "Entity kind: fuel or parking")
	nearCmd.Flags().StringVarP(&modeFlag, "mode", "m", "distance", "Ranking mode: price, distance or value")
	nearCmd.Flags().IntVarP(&nearLimit, "limit", "n", 20, "Max number of rows")

	rootCmd.AddCommand(statsCmd, sampleCmd, nearCmd, searchCmd, syncCmd, refreshCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env - общие зависимости команд
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *postgres.DB
}

func openEnv() (*env, error) {
	cfg, err := config.LoadFrom(envFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logLevel, "nearbyctl")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

func runStats(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	counts, err := postgres.NewStatsRepository(e.db, e.log).GetCounts(cmd.Context())
	if err != nil {
		return err
	}

	for _, kind := range []domain.EntityKind{domain.EntityKindParking, domain.EntityKindFuel} {
		c := counts[kind]
		fmt.Printf("%-8s total=%-6d with_coords=%-6d geocoded=%d\n", kind, c.Total, c.WithCoords, c.Geocoded)
	}
	return nil
}

func runSample(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	lots, err := postgres.NewParkingRepository(e.db).Sample(cmd.Context(), sampleLimit)
	if err != nil {
		return err
	}
	printLots(lots)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	lots, err := postgres.NewParkingRepository(e.db).SearchByName(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return err
	}
	if len(lots) == 0 {
		fmt.Printf("No parking lots match %q\n", args[0])
		return nil
	}
	printLots(lots)
	return nil
}

func runNear(cmd *cobra.Command, args []string) error {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("argument %d: %q is not a number", i+1, a)
		}
		values[i] = v
	}
	center := domain.GeoPoint{Lat: values[0], Lng: values[1]}

	kind, ok := domain.ParseEntityKind(kindFlag)
	if !ok {
		return fmt.Errorf("unknown kind %q", kindFlag)
	}
	mode, ok := domain.ParseRankMode(modeFlag)
	if !ok {
		return fmt.Errorf("unknown mode %q", modeFlag)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	entities, err := postgres.NewEntityRepository(e.db).LoadAll(cmd.Context(), kind)
	if err != nil {
		return err
	}

	results := usecase.FilterNearby(entities, center, values[2]*1000)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	ranker := usecase.NewRanker(domain.CostBenefitParams{
		FuelEfficiencyKmPerLiter: e.cfg.CostBenefit.FuelEfficiencyKmPerLiter,
		FixedRefuelLiters:        e.cfg.CostBenefit.FixedRefuelLiters,
	})
	list, err := ranker.Rank(results, mode)
	if err != nil {
		return err
	}

	fmt.Printf("%d %s within %.2f km (%d ranked by %s, average price %.0f)\n",
		len(results), kind, values[2], len(list.Entries), mode, list.AveragePrice)
	for i, entry := range list.Entries {
		if i == nearLimit {
			break
		}
		printEntry(i+1, entry)
	}
	return nil
}

func runSync(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if e.cfg.SeoulAPI.APIKey == "" {
		return fmt.Errorf("SEOUL_PARKING_API_KEY is not set")
	}

	var streamRepo repository.StreamRepository
	if redisClient, err := cache.NewRedis(&e.cfg.Redis, e.log); err != nil {
		fmt.Fprintf(os.Stderr, "Redis unavailable, API instances will not be notified: %v\n", err)
	} else {
		defer redisClient.Close()
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), 0, e.log)
	}

	uc := usecase.NewParkingSyncUseCase(
		seoulapi.NewClient(&e.cfg.SeoulAPI, e.log),
		postgres.NewParkingRepository(e.db),
		streamRepo,
		e.log,
	)

	result, err := uc.Sync(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("fetched=%d inserted=%d updated=%d kept_coords=%d without_coords=%d took=%s\n",
		result.Fetched, result.Inserted, result.Updated,
		result.KeptCoordinates, result.WithoutCoordinates, result.Duration.Round(time.Millisecond))
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	kind, ok := domain.ParseEntityKind(args[0])
	if !ok {
		return fmt.Errorf("unknown kind %q", args[0])
	}

	cfg, err := config.LoadFrom(envFile)
	if err != nil {
		return err
	}
	log, err := logger.New(logLevel, "nearbyctl")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	event := domain.NewSnapshotRefreshedEvent(kind, "nearbyctl")
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), 0, log)
	if err := streamRepo.PublishToStream(cmd.Context(), domain.StreamSnapshotRefreshed, event); err != nil {
		return err
	}

	fmt.Printf("Published %s refresh event %s\n", kind, event.EventID)
	return nil
}

func printLots(lots []*domain.ParkingLot) {
	for _, lot := range lots {
		loc := "-"
		if p := lot.Location(); p != nil {
			loc = fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
		}
		addr := ""
		if lot.Address != nil {
			addr = *lot.Address
		}
		fmt.Printf("%-10s %-30s %-22s %s\n", lot.Code, lot.Name, loc, addr)
	}
}

func printEntry(rank int, entry domain.RankedEntry) {
	price := "-"
	if entry.Entity.HasPrice() {
		price = strconv.FormatFloat(*entry.Entity.Price, 'f', -1, 64)
	}
	line := fmt.Sprintf("%3d. %-30s %8.0f m  price=%s", rank, entry.Entity.Name, entry.DistanceMeters, price)
	if cb := entry.CostBenefit; cb != nil {
		line += fmt.Sprintf("  net=%.0f worth_it=%t", cb.NetSavings, cb.IsWorthIt)
	}
	fmt.Println(line)
}
