package regulations

import "finpol-compliance/internal/models"

// Corpus - встроенная база нормативных документов, загружается в SQLite при старте
var Corpus = []models.Regulation{
	{
		ID:        "reg-rbi-edd",
		Code:      "RBI-KYC-2016-38",
		Title:     "RBI Master Direction: Enhanced Due Diligence for High-Value Transactions",
		Authority: "Reserve Bank of India",
		Category:  "RBI",
		Content:   "All high-value transactions over INR 10 lakhs require enhanced due diligence. Regulated entities must verify the source of funds and keep records of the verification for at least five years.",
		Keywords:  []string{"high-value", "due diligence", "india", "source of funds", "rbi"},
	},
	{
		ID:        "reg-rbi-lrs",
		Code:      "RBI-FEMA-LRS",
		Title:     "Liberalised Remittance Scheme and Cross-Border Transfers",
		Authority: "Reserve Bank of India",
		Category:  "RBI",
		Content:   "Outward remittances by resident individuals are limited under the Liberalised Remittance Scheme. Cross-border transfers above the limit require prior approval and purpose codes must be reported.",
		Keywords:  []string{"cross-border", "remittance", "foreign", "fema", "transfer"},
	},
	{
		ID:        "reg-fatf-16",
		Code:      "FATF-R16",
		Title:     "FATF Recommendation 16: Wire Transfers (Travel Rule)",
		Authority: "Financial Action Task Force",
		Category:  "FATF",
		Content:   "Financial institutions must collect and transmit originator and beneficiary information for cross-border transactions. The travel rule applies to virtual asset service providers for transfers of virtual assets.",
		Keywords:  []string{"travel rule", "wire transfer", "cross-border", "virtual assets", "beneficiary"},
	},
	{
		ID:        "reg-fatf-15",
		Code:      "FATF-R15",
		Title:     "FATF Recommendation 15: New Technologies and Virtual Assets",
		Authority: "Financial Action Task Force",
		Category:  "FATF",
		Content:   "Countries should manage money laundering risks of virtual assets. Virtual asset service providers including cryptocurrency exchanges must be licensed or registered and apply customer due diligence.",
		Keywords:  []string{"cryptocurrency", "crypto", "virtual assets", "vasp", "exchange"},
	},
	{
		ID:        "reg-fatf-19",
		Code:      "FATF-R19",
		Title:     "FATF Recommendation 19: Higher-Risk Countries",
		Authority: "Financial Action Task Force",
		Category:  "FATF",
		Content:   "Financial institutions must apply enhanced due diligence to business relationships and transactions with persons from high-risk jurisdictions identified by the FATF.",
		Keywords:  []string{"high-risk", "jurisdiction", "country", "offshore", "sanctions"},
	},
	{
		ID:        "reg-aml-str",
		Code:      "AML-PMLA-STR",
		Title:     "Suspicious Transaction Reporting to FIU",
		Authority: "Financial Intelligence Unit",
		Category:  "AML",
		Content:   "Suspicious transactions must be reported to the FIU within 7 days of being identified as suspicious. Reporting entities must not tip off the customer about the report.",
		Keywords:  []string{"suspicious", "reporting", "fiu", "money laundering", "anti-money laundering"},
	},
	{
		ID:        "reg-aml-ctr",
		Code:      "AML-PMLA-CTR",
		Title:     "Cash Transaction Reporting and Record Keeping",
		Authority: "Financial Intelligence Unit",
		Category:  "AML",
		Content:   "Cash transactions above the prescribed threshold and series of integrally connected transactions must be reported monthly. Transaction records must be kept for five years.",
		Keywords:  []string{"cash", "threshold", "record keeping", "structuring", "anti-money laundering"},
	},
	{
		ID:        "reg-kyc-cip",
		Code:      "KYC-CIP-01",
		Title:     "Customer Identification Programme",
		Authority: "Reserve Bank of India",
		Category:  "KYC",
		Content:   "Customer identification must be completed before opening accounts. Identity must be verified with officially valid documents and refreshed periodically according to the customer risk category.",
		Keywords:  []string{"identity", "verification", "customer", "onboarding", "kyc"},
	},
	{
		ID:        "reg-kyc-device",
		Code:      "KYC-DIGITAL-02",
		Title:     "Digital Onboarding and Device Verification",
		Authority: "Reserve Bank of India",
		Category:  "KYC",
		Content:   "Video-based customer identification and digital onboarding require device and geolocation checks. Sessions from compromised or high-risk devices must be escalated for additional verification.",
		Keywords:  []string{"device", "digital", "verification", "geolocation", "fraud"},
	},
	{
		ID:        "reg-gdpr-5",
		Code:      "GDPR-ART5",
		Title:     "GDPR Article 5: Principles of Personal Data Processing",
		Authority: "European Union",
		Category:  "GDPR",
		Content:   "Personal data must be processed lawfully, fairly and transparently, collected for specified purposes and kept no longer than necessary. Transaction monitoring data is subject to data minimisation.",
		Keywords:  []string{"personal data", "privacy", "retention", "minimisation", "eu"},
	},
	{
		ID:        "reg-sec-17a",
		Code:      "SEC-17A-8",
		Title:     "SEC Rule 17a-8: Financial Recordkeeping and Reporting of Currency Transactions",
		Authority: "U.S. Securities and Exchange Commission",
		Category:  "SEC",
		Content:   "Broker-dealers must comply with Bank Secrecy Act reporting and recordkeeping requirements, including filing suspicious activity reports for transactions of USD 5,000 or more.",
		Keywords:  []string{"broker-dealer", "bank secrecy act", "suspicious activity", "securities", "usd"},
	},
	{
		ID:        "reg-pci-3",
		Code:      "PCI-DSS-3",
		Title:     "PCI DSS Requirement 3: Protect Stored Account Data",
		Authority: "PCI Security Standards Council",
		Category:  "PCI-DSS",
		Content:   "Stored cardholder data must be protected. Primary account numbers must be rendered unreadable wherever stored and sensitive authentication data must not be retained after authorization.",
		Keywords:  []string{"card", "cardholder", "payment", "encryption", "account data"},
	},
}
