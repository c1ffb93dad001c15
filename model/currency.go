/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import (
	"strings"
)

// Currency is an ISO 4217 code, or the ticker of one of the supported cryptocurrencies.
type Currency string

// defaultPrecision is the number of digits after the decimal point for most currencies.
const defaultPrecision = 2

//nolint:gochecknoglobals
var twoDigitCurrencies = []Currency{
	"AED", "AFN", "ALL", "AMD", "ANG", "AOA", "ARS", "AUD", "AWG", "AZN", "BAM", "BBD", "BDT", "BGN",
	"BIF", "BMD", "BND", "BOB", "BRL", "BSD", "BTN", "BWP", "BYN", "BZD", "CAD", "CDF", "CHF", "CLP",
	"COP", "CRC", "CUP", "CVE", "CZK", "DJF", "DKK", "DOP", "DZD", "EGP", "ERN", "ETB", "EUR", "FJD",
	"FKP", "GBP", "GEL", "GHS", "GIP", "GMD", "GNF", "GTQ", "GYD", "HKD", "HNL", "HRK", "HTG", "HUF",
	"IDR", "ILS", "INR", "ISK", "JMD", "JOD", "JPY", "KES", "KGS", "KHR", "KMF", "KPW", "KRW", "KYD",
	"KZT", "LAK", "LBP", "LKR", "LRD", "LSL", "MAD", "MDL", "MKD", "MMK", "MNT", "MOP", "MUR", "MVR",
	"MWK", "MXN", "MYR", "MZN", "NAD", "NGN", "NIO", "NOK", "NPR", "NZD", "PAB", "PEN", "PGK", "PHP",
	"PKR", "PLN", "PYG", "QAR", "RON", "RSD", "RUB", "RWF", "SAR", "SBD", "SCR", "SDG", "SEK", "SGD",
	"SHP", "SLL", "SOS", "SRD", "SSP", "STN", "SYP", "SZL", "THB", "TJS", "TMT", "TOP", "TRY", "TTD",
	"TWD", "TZS", "UAH", "USD", "UYU", "UZS", "VED", "VES", "VUV", "WST", "XAF", "XCD", "XOF", "XPF",
	"YER", "ZAR", "ZMW",
}

//nolint:gochecknoglobals
var currencyPrecision = func() map[Currency]int {
	m := map[Currency]int{
		"BHD": 3, "CNY": 1, "IQD": 3, "IRR": 0, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3, "VND": 1,
		// Cryptocurrencies
		"BTC": 8, "USDT": 4, "USDC": 4, "BUSD": 4, "XRP": 6, "ADA": 6, "DOGE": 8, "LTC": 8,
		"XMR": 12, "TRX": 6, "BCH": 8, "ETH": 18, "ETC": 18,
	}
	for _, c := range twoDigitCurrencies {
		m[c] = defaultPrecision
	}
	return m
}()

// ValidateCurrency normalizes s and reports whether it is a supported currency.
func ValidateCurrency(s string) (Currency, bool) {
	currency := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencyPrecision[currency]; !ok {
		return "", false
	}
	return currency, true
}
