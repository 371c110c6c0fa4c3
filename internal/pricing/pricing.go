package pricing

import "math"

type PaymentType string

const (
	PaymentTotal   PaymentType = "total"
	PaymentPartial PaymentType = "partial"
)

type Accreditation string

const (
	AccreditationImmediate Accreditation = "immediate"
	AccreditationDelayed21 Accreditation = "delayed21"
)

// Payment method tiers recognised by the gateway fee table. Anything else
// falls back to the debit tier.
const (
	MethodDebit              = "mp_cuenta_debito_prepaga_redes"
	MethodCredit             = "tarjeta_credito"
	MethodCreditInstallments = "tarjeta_credito_cuotas"
)

const (
	fullPaymentDiscountRate = 0.05
	platformFeeRate         = 0.05
)

// gatewayRates maps a payment-method tier and accreditation speed to the
// gateway's fee rate. Immediate accreditation always costs more than the
// 21-day settlement.
var gatewayRates = map[string]map[Accreditation]float64{
	MethodDebit: {
		AccreditationImmediate: 0.0250,
		AccreditationDelayed21: 0.0190,
	},
	MethodCredit: {
		AccreditationImmediate: 0.0549,
		AccreditationDelayed21: 0.0449,
	},
	MethodCreditInstallments: {
		AccreditationImmediate: 0.0779,
		AccreditationDelayed21: 0.0679,
	},
}

type Input struct {
	PriceBase        float64
	PaymentType      PaymentType
	PaymentMethod    string
	Accreditation    Accreditation
	CreditsAvailable float64
}

// Breakdown is what the client sees before paying and what the master is
// owed after fees. Client-facing amounts are computed off the discounted
// price; platform and gateway fees are computed off the raw PriceBase. The
// two bases intentionally differ so that displayed figures stay stable
// whether or not the discount applies.
type Breakdown struct {
	PriceBase           float64 `json:"price_base"`
	FullPaymentDiscount float64 `json:"full_payment_discount"`
	UpfrontBeforeCredit float64 `json:"upfront_before_credits"`
	CreditsApplied      float64 `json:"credits_applied"`
	UpfrontAmount       float64 `json:"upfront_amount"`
	PendingAmount       float64 `json:"pending_amount"`
	PlatformFee         float64 `json:"platform_fee"`
	GatewayFee          float64 `json:"gateway_fee"`
	TotalFees           float64 `json:"total_fees"`
	NetMaster           float64 `json:"net_master"`
}

// Calculate computes the full price breakdown for a booking payment.
// Pure, no I/O.
func Calculate(in Input) Breakdown {
	// The split base is always the discounted price; the discount line is
	// only itemised for full payments.
	discount := round2(in.PriceBase * fullPaymentDiscountRate)
	discounted := round2(in.PriceBase - discount)
	if in.PaymentType != PaymentTotal {
		discount = 0
	}

	var upfrontBefore, pending float64
	if in.PaymentType == PaymentPartial {
		// Exact 50/50 split of the discounted price; the second half stays
		// pending until the work is done.
		upfrontBefore = round2(discounted / 2)
		pending = upfrontBefore
	} else {
		upfrontBefore = discounted
	}

	credits := math.Min(math.Max(in.CreditsAvailable, 0), upfrontBefore)
	credits = round2(credits)
	upfront := round2(upfrontBefore - credits)

	platformFee := round2(in.PriceBase * platformFeeRate)
	gatewayFee := round2(in.PriceBase * GatewayRate(in.PaymentMethod, in.Accreditation))
	totalFees := round2(platformFee + gatewayFee)

	return Breakdown{
		PriceBase:           in.PriceBase,
		FullPaymentDiscount: discount,
		UpfrontBeforeCredit: upfrontBefore,
		CreditsApplied:      credits,
		UpfrontAmount:       upfront,
		PendingAmount:       pending,
		PlatformFee:         platformFee,
		GatewayFee:          gatewayFee,
		TotalFees:           totalFees,
		NetMaster:           round2(in.PriceBase - totalFees),
	}
}

// GatewayRate looks up the gateway fee rate for a method and accreditation
// speed. Unknown methods default to the debit tier; unknown accreditation
// defaults to immediate.
func GatewayRate(method string, accreditation Accreditation) float64 {
	tier, ok := gatewayRates[method]
	if !ok {
		tier = gatewayRates[MethodDebit]
	}
	rate, ok := tier[accreditation]
	if !ok {
		rate = tier[AccreditationImmediate]
	}
	return rate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
