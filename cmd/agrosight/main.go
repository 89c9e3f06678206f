package main

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/agrosight/agrosight/internal/api"
	"github.com/agrosight/agrosight/internal/collect"
	"github.com/agrosight/agrosight/internal/models"
	"github.com/agrosight/agrosight/internal/notify"
	"github.com/agrosight/agrosight/internal/pipeline"
	"github.com/agrosight/agrosight/internal/store"
)

type serveCmd struct {
	Port string `default:"8080" env:"PORT" help:"HTTP server port."`
	DB   string `default:"data/agrosight.db" env:"DB_PATH" help:"Path to the SQLite run-history database."`
}

type runCmd struct {
	FarmerID string  `arg:"" help:"Farmer identifier."`
	Lat      float64 `help:"Latitude of the farm."`
	Lon      float64 `help:"Longitude of the farm."`
	Address  string  `help:"Free-text address, used when no coordinates are given."`
	Crop     string  `help:"Selected crop for crop-specific analysis."`
	Phone    string  `help:"Phone number for the advisory SMS."`
	Language string  `default:"en" enum:"en,hi,mr" help:"Advisory language."`
	Image    string  `type:"existingfile" optional:"" help:"Field photo to analyze."`
}

var cli struct {
	WeatherURL   string `env:"WEATHER_API_URL" help:"Open-Meteo compatible base URL."`
	GeocodeURL   string `env:"GEOCODE_API_URL" help:"Nominatim compatible base URL."`
	SatelliteURL string `env:"SATELLITE_API_URL" help:"Earth observation gateway base URL."`
	LandUseHost  string `env:"LANDUSE_FTP_HOST" help:"Land-cover bulletin FTP host."`

	TwilioSID   string `env:"TWILIO_ACCOUNT_SID" help:"Twilio account SID."`
	TwilioToken string `env:"TWILIO_AUTH_TOKEN" help:"Twilio auth token."`
	TwilioFrom  string `env:"TWILIO_FROM_NUMBER" help:"Sender phone number."`

	SkipNotifications bool `env:"SKIP_NOTIFICATIONS" help:"Skip all SMS/voice sends (testing)."`

	Serve serveCmd `cmd:"" help:"Run the HTTP API server."`
	Run   runCmd   `cmd:"" help:"Execute one pipeline run and print the result."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("agrosight"),
		kong.Description("Farm insight and advisory pipeline."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch ctx.Command() {
	case "serve":
		err = serve(sigCtx)
	case "run <farmer-id>":
		err = runOnce(sigCtx)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		log.Fatal(err)
	}
}

func buildPipeline() (*pipeline.Pipeline, *notify.Policy) {
	var environmental pipeline.EnvironmentalCollector
	if cli.SatelliteURL != "" {
		environmental = collect.NewEnvironmental(
			collect.NewSatelliteClient(cli.SatelliteURL),
			collect.NewLandUseClient(cli.LandUseHost),
		)
	} else {
		log.Println("SATELLITE_API_URL not set; environmental stage will use fallback data")
	}

	var analyzer pipeline.ImageAnalyzer
	if vision, err := collect.NewVisionAnalyzer(); err != nil {
		log.Printf("image analysis disabled: %v", err)
	} else {
		analyzer = vision
	}

	policy := &notify.Policy{Skip: cli.SkipNotifications}
	var dispatcher *notify.Dispatcher
	if cli.TwilioSID != "" && cli.TwilioToken != "" && cli.TwilioFrom != "" {
		sender := collect.NewTwilioSender(cli.TwilioSID, cli.TwilioToken, cli.TwilioFrom, "")
		dispatcher = notify.NewDispatcher(sender, policy)
	} else {
		log.Println("Twilio credentials not set; notifications disabled")
	}

	p := pipeline.New(pipeline.Config{
		Location:      collect.NewGeocoder(cli.GeocodeURL),
		Environmental: environmental,
		Weather:       collect.NewWeather(collect.NewOpenMeteo(cli.WeatherURL)),
		Images:        analyzer,
		Prepare:       collect.PrepareImage,
		Dispatcher:    dispatcher,
	})
	return p, policy
}

func serve(ctx context.Context) error {
	db, err := sql.Open("sqlite", cli.Serve.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Println("database migrated")

	p, policy := buildPipeline()
	return api.NewServer(p, st, policy, cli.Serve.Port).Start(ctx)
}

func runOnce(ctx context.Context) error {
	p, _ := buildPipeline()

	input := models.FarmerInput{
		FarmerID:     cli.Run.FarmerID,
		Address:      cli.Run.Address,
		SelectedCrop: cli.Run.Crop,
		PhoneNumber:  cli.Run.Phone,
		Language:     cli.Run.Language,
	}
	if cli.Run.Lat != 0 || cli.Run.Lon != 0 {
		input.Coordinates = &models.Coordinates{Lat: cli.Run.Lat, Lon: cli.Run.Lon}
	}
	if cli.Run.Image != "" {
		raw, err := os.ReadFile(cli.Run.Image)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		input.ImageBase64 = base64.StdEncoding.EncodeToString(raw)
	}

	result := p.Execute(ctx, input)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
