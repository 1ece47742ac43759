package utils

import (
	"encoding/json"
	"log"

	"github.com/dibyajyoti0750/Ascend-LMS/config"

	"github.com/go-resty/resty/v2"
)

// fallbackUSDToINR is used when the rate API is unreachable, so a
// checkout is never blocked on a third-party quote service.
const fallbackUSDToINR = 84.0

// GetUSDToINRRate fetches the current USD to INR conversion rate.
func GetUSDToINRRate() float64 {
	client := resty.New()
	resp, err := client.R().Get(config.AppConfig.CurrencyAPIURL)
	if err != nil {
		log.Printf("Failed to fetch exchange rate: %v", err)
		return fallbackUSDToINR
	}
	if resp.StatusCode() != 200 {
		log.Printf("Exchange rate API error: %s", resp.String())
		return fallbackUSDToINR
	}

	var rateResp struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(resp.Body(), &rateResp); err != nil {
		log.Printf("Failed to parse exchange rate response: %v", err)
		return fallbackUSDToINR
	}

	rate, ok := rateResp.Rates["INR"]
	if !ok || rate <= 0 {
		log.Println("Exchange rate response missing INR rate")
		return fallbackUSDToINR
	}

	return rate
}
