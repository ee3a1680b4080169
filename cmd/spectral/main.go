package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/spectral"
)

// #region main

func main() {
	ollamaURL := flag.String("ollama", "http://localhost:11434", "Ollama base URL")
	draftModel := flag.String("draft-model", "qwen2.5:0.5b", "Ollama model for draft embeddings")
	teacherModel := flag.String("teacher-model", "qwen2.5:7b", "Ollama model for teacher embeddings")
	matrixPath := flag.String("w", "benchmark/qwen-sentence-align/artifacts/W_v2_1.npy", "alignment matrix path")
	outDir := flag.String("out-dir", "benchmark/qwen-sentence-align/reports/spectral", "output directory")
	n := flag.Int("n", 0, "how many texts to test (0 = all)")
	flag.Parse()

	if err := run(*ollamaURL, *draftModel, *teacherModel, *matrixPath, *outDir, *n); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// #endregion main

// #region run

func run(ollamaURL, draftModel, teacherModel, matrixPath, outDir string, n int) error {
	ctx := context.Background()
	client := spectral.NewOllamaClient(ollamaURL, 30*time.Second)

	if err := client.CheckReachable(ctx); err != nil {
		return fmt.Errorf("ollama is not reachable, start it first: %w", err)
	}

	w, err := spectral.LoadAlignmentMatrix(matrixPath)
	if err != nil {
		return err
	}
	rows, cols := w.Dims()

	texts := spectral.DefaultTexts()
	if n > 0 && n < len(texts) {
		texts = texts[:n]
	}

	fmt.Printf("texts=%d\n", len(texts))
	fmt.Printf("draft-model=%s, teacher-model=%s\n", draftModel, teacherModel)
	fmt.Printf("W shape=%dx%d\n", rows, cols)

	results, err := spectral.Run(ctx, client, w, texts, draftModel, teacherModel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	csvPath := filepath.Join(outDir, "spectral_alignment_baseline.csv")
	if err := writeFile(csvPath, func(f *os.File) error {
		return spectral.WriteCSV(f, results)
	}); err != nil {
		return err
	}

	setup := spectral.Setup{
		OllamaURL:    ollamaURL,
		DraftModel:   draftModel,
		TeacherModel: teacherModel,
		MatrixPath:   matrixPath,
		MatrixRows:   rows,
		MatrixCols:   cols,
	}
	reportPath := filepath.Join(outDir, "spectral_alignment_baseline_report.md")
	if err := writeFile(reportPath, func(f *os.File) error {
		return spectral.WriteReport(f, setup, results)
	}); err != nil {
		return err
	}

	fmt.Printf("csv: %s\n", csvPath)
	fmt.Printf("report: %s\n", reportPath)
	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

// #endregion run
