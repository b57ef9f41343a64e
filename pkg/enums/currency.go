package enums

// Currency is the ISO 4217 code used for checkout sessions. The storefront
// sells in Mexican pesos only.
type Currency string

const CurrencyMXN Currency = "mxn"
