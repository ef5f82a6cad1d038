package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pulseapp/pulse-backend/internal/config"
)

func main() {
	fmt.Println("🔍 Verificando configuração...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  arquivo .env não encontrado: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Erro de validação da configuração:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuração válida!")
	fmt.Printf("📋 Detalhes da configuração:\n")
	fmt.Printf("  - Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("  - AI Provider: %s\n", cfg.AI.Provider)
	fmt.Printf("  - AI API Key: %s\n", maskToken(cfg.AI.APIKey))
	fmt.Printf("  - Stripe Secret Key: %s\n", maskToken(cfg.Stripe.SecretKey))
	fmt.Printf("  - Stripe Price ID: %s\n", cfg.Stripe.PriceID)
	fmt.Printf("  - Trial Days: %d\n", cfg.Stripe.TrialDays)
	fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
	fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
	fmt.Printf("  - DB User: %s\n", cfg.DB.User)
	fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<não definido>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
