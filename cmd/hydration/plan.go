// ABOUTME: CLI command for planning a workout's fluid and sodium targets.
// ABOUTME: Seeds the form from today's record and profile, optionally fetches weather.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/hydration/internal/engine"
	"github.com/harperreed/hydration/internal/models"
	"github.com/harperreed/hydration/internal/weather"
	"github.com/spf13/cobra"
)

var (
	planType     string
	planRPE      int
	planDuration int
	planPre      int
	planTemp     float64
	planHumidity float64
	planUV       float64
	planUrine    int
	planMass     float64
	planFluid    float64
	planCaffeine float64
	planAlcohol  float64
	planDate     string
	planLat      float64
	planLon      float64
	planDryRun   bool
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"p"},
	Short:   "Plan hydration for a workout",
	Long: `Compute how much to drink during and after a workout.

Fluids, alcohol, caffeine and urine color already logged for the day fill in
the form. Body mass comes from your profile unless --mass is given. With
--lat/--lon and a WeatherAPI key, current conditions fill in temperature,
humidity and UV.

Examples:
  hydration plan --rpe 7 --duration 60
  hydration plan --rpe 5 --duration 90 --temp 30 --humidity 70 --uv 8
  hydration plan --rpe 8 --duration 45 --lat 41.88 --lon -87.63
  hydration plan --rpe 6 --duration 60 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := currentUser()
		if err != nil {
			return err
		}
		if planPre < 1 || planPre > 5 {
			return fmt.Errorf("--pre must be between 1 and 5")
		}

		form := *models.NewSessionInput(planType, planRPE, planDuration, planPre)
		flags := cmd.Flags()
		if flags.Changed("temp") {
			form.TempC = models.Float(planTemp)
		}
		if flags.Changed("humidity") {
			form.HumidityPct = models.Float(planHumidity)
		}
		if flags.Changed("uv") {
			form.UVIndex = models.Float(planUV)
		}
		if flags.Changed("urine") {
			form.WithUrineColor(planUrine)
		}
		if flags.Changed("mass") {
			form.WithMass(planMass)
		}
		form.FluidPriorL = planFluid
		form.CaffeineMg = planCaffeine
		form.AlcoholDrinks = planAlcohol

		ctx := commandContext(cmd)
		var snapshot *models.Weather
		if flags.Changed("lat") && flags.Changed("lon") {
			snapshot = fetchWeather(ctx, planLat, planLon)
		}

		if planDryRun {
			input, err := svc.Prepare(ctx, email, planDate, form, snapshot)
			if err != nil {
				return err
			}
			input = engine.NormalizeInput(input)
			color.Cyan("Plan preview (not saved)")
			printPlan(engine.ComputePlan(input), input)
			return nil
		}

		entry, err := svc.PlanToday(ctx, email, planDate, form, snapshot)
		if err != nil {
			return err
		}
		color.Green("✓ Saved plan %s", faint.Sprint(entry.TS))
		printPlan(entry.Plan, entry.Input)
		fmt.Println()
		fmt.Println(faint.Sprintf("Record what you drank: hydration logs intake %d <liters>", entry.TS))
		return nil
	},
}

// fetchWeather returns current conditions, or nil with a warning when the
// lookup is not configured or fails.
func fetchWeather(ctx context.Context, lat, lon float64) *models.Weather {
	client := weather.NewClient(cfg.GetWeatherAPIKey())
	if !client.Configured() {
		color.Yellow("⚠ No weather API key set; ignoring --lat/--lon")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	w, err := client.Current(ctx, lat, lon)
	if err != nil {
		color.Yellow("⚠ Weather lookup failed: %v", err)
		return nil
	}
	return w
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planType, "type", "t", "", "workout type (run, ride, ...)")
	f.IntVar(&planRPE, "rpe", 5, "perceived exertion 0-10")
	f.IntVarP(&planDuration, "duration", "d", 60, "duration in minutes")
	f.IntVar(&planPre, "pre", 3, "how hydrated you feel, 1 (dry) to 5 (well hydrated)")
	f.Float64Var(&planTemp, "temp", 0, "temperature in °C")
	f.Float64Var(&planHumidity, "humidity", 0, "relative humidity %")
	f.Float64Var(&planUV, "uv", 0, "UV index")
	f.IntVar(&planUrine, "urine", 0, "urine color 1-10 (default: latest logged today)")
	f.Float64Var(&planMass, "mass", 0, "body mass in kg (default: profile)")
	f.Float64Var(&planFluid, "fluid", 0, "liters drunk in the last 2 hours")
	f.Float64Var(&planCaffeine, "caffeine", 0, "caffeine today in mg")
	f.Float64Var(&planAlcohol, "alcohol", 0, "alcoholic drinks in the last 24 hours")
	f.StringVar(&planDate, "date", "", "daily record date YYYY-MM-DD (default: today)")
	f.Float64Var(&planLat, "lat", 0, "latitude for a weather lookup")
	f.Float64Var(&planLon, "lon", 0, "longitude for a weather lookup")
	f.BoolVar(&planDryRun, "dry-run", false, "show the plan without saving it")

	rootCmd.AddCommand(planCmd)
}
