package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cet-mentor-be/internal/config"
	"cet-mentor-be/internal/constant"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/internal/repository/memory"
	"cet-mentor-be/pkg/llm/factory"
	ragcontext "cet-mentor-be/pkg/rag/context"
	"cet-mentor-be/pkg/rag/predict"
	"cet-mentor-be/pkg/rag/response"
	"cet-mentor-be/pkg/rag/search"
	"cet-mentor-be/pkg/rag/session"
	"cet-mentor-be/pkg/rag/suggest"

	"github.com/fatih/color"
)

// Local terminal client for the mentor pipeline. Talks to the assembler and
// generator directly, no HTTP server needed.

var dataFile = flag.String("data", "", "Path to the cutoff data file (overrides config)")

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	cfg := config.Load()
	if *dataFile != "" {
		cfg.Knowledge.DataFilePath = *dataFile
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	knowledgeRepo := memory.NewKnowledgeRepository(sysLogger)
	if err := knowledgeRepo.Load(cfg.Knowledge.DataFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load cutoff data: %v\n", err)
		os.Exit(1)
	}

	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize LLM provider: %v\n", err)
		os.Exit(1)
	}

	retriever := search.NewRetriever(knowledgeRepo, sysLogger)
	suggester := suggest.NewSuggester(knowledgeRepo, cfg.Knowledge.TotalCandidates, sysLogger)
	sessionManager := session.NewManager(memory.NewSessionRepository(), sysLogger)
	assembler := ragcontext.NewAssembler(
		retriever,
		suggester,
		predict.NewPredictor(),
		sessionManager,
		cfg.Knowledge.SuggestMargin,
		cfg.Knowledge.RetrievalLimit,
		sysLogger,
	)
	generator := response.NewGenerator(llmProvider, constant.SystemPromptV1(time.Now().Year()), sysLogger)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Println(boldGreen("🎓 CET-Mentor"))
	fmt.Printf("Loaded %d cutoff records. Model: %s (%s)\n", len(knowledgeRepo.AllRecords()), boldCyan(cfg.Ai.Model), cfg.Ai.Provider)
	fmt.Println("Enter your rank, a percentile with a college name, or a question.")
	fmt.Println("Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	sess := sessionManager.LoadOrCreate("", time.Now())
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()

		if strings.ToLower(strings.TrimSpace(input)) == "exit" {
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		now := time.Now()
		bundle, err := assembler.Assemble(sess, input, now)
		if err != nil {
			fmt.Printf("%s %v\n\n", boldCyan("Mentor:"), err)
			continue
		}

		fmt.Print(boldCyan("Mentor: "))
		answer, err := generator.Generate(ctx, input, bundle, nil)
		if err != nil {
			fmt.Println(response.FallbackAnswer(bundle))
			fmt.Println("(generation unavailable, showing raw data)")
			fmt.Println()
			continue
		}

		fmt.Println(answer)
		fmt.Println()
	}
}
