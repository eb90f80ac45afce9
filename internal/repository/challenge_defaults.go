package repository

import "github.com/prompt-arena/arena-go-api/internal/models"

// defaultChallenges is the built-in challenge set, used when no challenges
// file is configured. One challenge per business category.
var defaultChallenges = []challengeEntry{
	{
		Category: "Wealth Management",
		ID:       "gwm-portfolio-review",
		Title:    "Summarize a client's portfolio review",
		Task:     "Write a prompt that asks an LLM to summarize a client's last quarter portfolio performance, highlight risk exposures, and propose 2 actionable rebalancing suggestions.",
		TestCases: []models.TestCase{
			{
				Input:    "Holdings: 40% equities (US large-cap), 40% bonds (IG), 20% cash. Q3 perf: +2.1%",
				Expected: "Summary: the portfolio returned +2.1% in Q3, led by US large-cap equities. Risk exposures: concentration in US large-cap and duration risk on the investment-grade bond sleeve. Rebalancing suggestions: 1. Trim equities toward a diversified global allocation. 2. Deploy part of the 20% cash into short-duration bonds to reduce drag.",
			},
			{
				Input:    "Client risk: Moderate; Constraints: no energy sector >10%",
				Expected: "Summary: the mandate is moderate risk with a hard cap of 10% on energy exposure. Risk exposures: breaching the energy cap through broad index funds. Rebalancing suggestions: 1. Screen index holdings for embedded energy weight and cap it below 10%. 2. Shift the balance toward quality dividend equities consistent with a moderate profile.",
			},
		},
	},
	{
		Category: "Investment Bank",
		ID:       "ib-deal-teaser",
		Title:    "Deal teaser extraction",
		Task:     "Craft a prompt to extract the 5 most compelling selling points from a deal teaser, with bullet points capped at 20 words each.",
		TestCases: []models.TestCase{
			{
				Input:    "Sector: FinTech; Geography: APAC; Revenue: $120M; Growth: 35% YoY",
				Expected: "- APAC FinTech platform with $120M revenue\n- Strong 35% year-over-year growth\n- Exposure to fast-growing APAC payments market\n- Scalable recurring revenue model\n- Attractive entry point ahead of regional expansion",
			},
			{
				Input:    "Differentiators: proprietary fraud engine; 200+ enterprise clients",
				Expected: "- Proprietary fraud detection engine as a durable moat\n- 200+ enterprise clients demonstrating market trust\n- Sticky enterprise relationships with low churn\n- Cross-sell potential across the installed base\n- Defensible technology with high switching costs",
			},
		},
	},
	{
		Category: "Asset Management",
		ID:       "am-esg-highlights",
		Title:    "ESG highlights generator",
		Task:     "Create a prompt that turns raw KPI data into a concise ESG summary paragraph for a fund factsheet.",
		TestCases: []models.TestCase{
			{
				Input:    "Carbon intensity: -18% vs benchmark; Board diversity: 42%",
				Expected: "The fund maintains a carbon intensity 18% below its benchmark, reflecting a disciplined low-carbon tilt, while portfolio companies average 42% board diversity, underscoring a sustained commitment to strong governance.",
			},
			{
				Input:    "Engagements: 23; Exclusions: thermal coal >25% revenue",
				Expected: "During the period the team conducted 23 company engagements on environmental and governance topics, and the fund continues to exclude issuers deriving more than 25% of revenue from thermal coal.",
			},
		},
	},
	{
		Category: "Group Functions",
		ID:       "gf-policy-qa",
		Title:    "Policy Q&A author",
		Task:     "Write a prompt to convert a long internal policy into a Q&A with clear, compliance-friendly answers and citations to sections.",
		TestCases: []models.TestCase{
			{
				Input:    "Policy: Travel & Expenses v3.2; Sections 4, 7 most asked",
				Expected: "Q: What expenses require pre-approval? A: All travel bookings above the standard class threshold require manager pre-approval (Section 4). Q: How quickly must expense claims be submitted? A: Claims must be filed within 30 days of the trip end date (Section 7).",
			},
			{
				Input:    "Audience: new hires; Tone: plain language",
				Expected: "Q: Do I need approval before booking travel? A: Yes, ask your manager before you book anything (Section 4). Q: When do I submit my receipts? A: Within 30 days of getting back, through the expenses tool (Section 7).",
			},
		},
	},
	{
		Category: "Technology",
		ID:       "tech-bug-triage",
		Title:    "Bug report triage",
		Task:     "Design a prompt that classifies bug reports by severity, extracts reproduction steps, and suggests an owner team.",
		TestCases: []models.TestCase{
			{
				Input:    "Report: 'App crashes when uploading CSV > 5MB'",
				Expected: "Severity: High. Reproduction steps: 1. Open the app. 2. Upload a CSV file larger than 5MB. 3. Observe the crash. Owner team: Upload service.",
			},
			{
				Input:    "Modules: Upload service, Parser, UI",
				Expected: "Severity: triage per report. Candidate owner teams: Upload service for ingestion failures, Parser for malformed-file errors, UI for rendering issues. Reproduction steps must name the module, input, and observed failure.",
			},
		},
	},
}
