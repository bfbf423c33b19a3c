// Command trainer builds the risk model artifact offline: it loads (or
// generates) a labeled dataset, trains the forest, reports evaluation
// metrics on a held-out split, and writes the artifact riskd serves.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/forest"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/training"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/observability"
)

func main() {
	var (
		dataPath = flag.String("data", "data/students.csv", "path to the training dataset CSV")
		outPath  = flag.String("out", "model/risk_model.gob", "path to write the model artifact")
		generate = flag.Bool("generate", false, "generate a synthetic dataset at -data before training")
		rows     = flag.Int("rows", 500, "synthetic dataset size when -generate is set")
		seed     = flag.Int64("seed", 42, "random seed for generation, splitting and training")
		trees    = flag.Int("trees", 100, "number of trees in the forest")
		depth    = flag.Int("depth", 10, "maximum tree depth")
	)
	flag.Parse()

	logger := observability.InitLogger(observability.LogConfig{Level: "info", Format: "text"})

	if err := run(logger, *dataPath, *outPath, *generate, *rows, *seed, *trees, *depth); err != nil {
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dataPath, outPath string, generate bool, rows int, seed int64, trees, depth int) error {
	if generate {
		samples := training.Generate(rows, seed)
		if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		if err := training.WriteCSVFile(dataPath, samples); err != nil {
			return err
		}
		logger.Info("generated dataset", "path", dataPath, "rows", len(samples))
	}

	samples, err := training.ReadCSVFile(dataPath)
	if err != nil {
		return err
	}

	train, test, err := training.StratifiedSplit(samples, 0.2, seed)
	if err != nil {
		return err
	}
	logger.Info("split dataset", "train", len(train), "test", len(test))

	features, labels := training.FeaturesAndLabels(train)
	model, err := forest.Train(features, labels, forest.TrainConfig{
		NumTrees:        trees,
		MaxDepth:        depth,
		Seed:            seed,
		BalancedWeights: true,
	})
	if err != nil {
		return err
	}

	report, err := evaluate(model, test)
	if err != nil {
		return err
	}
	fmt.Println(report)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}
	if err := model.Save(outPath); err != nil {
		return err
	}
	logger.Info("model artifact saved", "path", outPath, "trees", len(model.Trees))

	quickTest(model)
	return nil
}

func evaluate(model *forest.Forest, test []training.Sample) (training.Report, error) {
	truth := make([]string, len(test))
	predicted := make([]string, len(test))
	for i, s := range test {
		label, _, err := model.Predict(s.Features())
		if err != nil {
			return training.Report{}, err
		}
		truth[i] = s.Label
		predicted[i] = label
	}
	return training.Evaluate(truth, predicted)
}

// quickTest prints predictions for three obvious profiles as a smoke check.
func quickTest(model *forest.Forest) {
	cases := [][]float64{
		{95, 80, 0},
		{65, 50, 2},
		{45, 35, 5},
	}

	fmt.Println("quick test predictions:")
	for _, c := range cases {
		label, proba, err := model.Predict(c)
		if err != nil {
			fmt.Printf("  attendance %.0f%% | grade %.0f | incidents %.0f -> error: %v\n", c[0], c[1], c[2], err)
			continue
		}
		fmt.Printf("  attendance %.0f%% | grade %.0f | incidents %.0f -> %s (confidence %.1f%%)\n",
			c[0], c[1], c[2], label, proba*100)
	}
}
