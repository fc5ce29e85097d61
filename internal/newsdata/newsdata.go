// Package newsdata holds the bundled default article dataset, used whenever
// the persisted snapshot is absent or stale.
package newsdata

import "techtimes/internal/model"

// Default returns a fresh copy of the bundled dataset. Callers may mutate the
// returned slice freely.
func Default() []model.Article {
	articles := make([]model.Article, len(bundled))
	copy(articles, bundled)
	return articles
}

var bundled = []model.Article{
	{
		ID:              "tt-001",
		Title:           "Foundation Models Move Into the Newsroom",
		Publisher:       "Market Watch",
		Authors:         []string{"Elena Vargas", "Tom Okafor"},
		Preview:         "Major outlets are quietly wiring generative models into their editorial pipelines, and the economics are starting to shift.",
		Body:            "Major outlets are quietly wiring generative models into their editorial pipelines. Early adopters report faster turnaround on wire rewrites and data-heavy briefs, while ombudsmen warn about provenance. The economics of the newsroom are starting to shift in ways publishers have not seen since the move to digital.",
		PublicationDate: "2024",
		Category:        "Global Tech",
		Link:            "2403.11207",
		WhyMatters:      "Editorial automation changes who gets paid to write the first draft of history.",
		Upvotes:         12,
		Timestamp:       1710400000000,
		Insights:        []string{"Wire rewrites are the beachhead use case", "Provenance tooling lags adoption"},
		ReadTime:        "6 min",
	},
	{
		ID:              "tt-002",
		Title:           "The Chip Supply Chain Finds a New Chokepoint",
		Publisher:       "Market Watch",
		Authors:         []string{"Priya Raman"},
		Preview:         "Advanced packaging, not lithography, is now the scarcest step between a wafer and a working accelerator.",
		Body:            "For two decades the industry watched lithography roadmaps. The binding constraint has moved downstream: advanced packaging capacity is booked out through next year, and the firms that control it are not the ones investors spent a decade learning to price.",
		PublicationDate: "2024",
		Category:        "Markets",
		Link:            "10.1000/tt.2024.0207",
		WhyMatters:      "Whoever owns the scarce step owns the margin.",
		Upvotes:         9,
		Timestamp:       1707900000000,
		ReadTime:        "8 min",
	},
	{
		ID:              "tt-003",
		Title:           "Passkeys Hit the Long Tail",
		Publisher:       "The Wire Desk",
		Authors:         []string{"Marcus Lee"},
		Preview:         "The big platforms shipped passkeys years ago. This year the long tail of mid-size services followed, and attackers noticed.",
		Body:            "Phishing-resistant sign-in stopped being a flagship feature and became table stakes. As mid-size services adopt passkeys, credential-stuffing crews are pivoting to session theft and recovery-flow abuse, the soft underbelly the standards never covered.",
		PublicationDate: "2025",
		Category:        "Cyber",
		Link:            "arXiv:2501.04455",
		WhyMatters:      "Attackers move to the weakest remaining link, and that link is account recovery.",
		Upvotes:         15,
		Timestamp:       1736200000000,
		Insights:        []string{"Recovery flows are the new phishing surface"},
		ReadTime:        "5 min",
	},
	{
		ID:              "tt-004",
		Title:           "Why the Smart Ring Finally Stuck",
		Publisher:       "Gadget Bench",
		Authors:         []string{"Ana Sofia Duarte", "Kenji Mori"},
		Preview:         "A decade of false starts, then a form factor quietly crossed from novelty to habit.",
		Body:            "Battery chemistry, not sensors, was the blocker all along. With week-long charge cycles and insurance partnerships subsidizing hardware, the smart ring has crossed from early-adopter novelty to a device people forget they are wearing.",
		PublicationDate: "2023",
		Category:        "Gadgets",
		Link:            model.NoLink,
		WhyMatters:      "Wearables only matter once nobody thinks about wearing them.",
		Upvotes:         6,
		Timestamp:       1695800000000,
		ReadTime:        "4 min",
	},
	{
		ID:              "tt-005",
		Title:           "The Case Against Infinite Context",
		Publisher:       "Opinion Desk",
		Authors:         []string{"Dr. Hannah Weiss"},
		Preview:         "Million-token windows are a benchmark triumph and a product dead end.",
		Body:            "Vendors race to advertise ever-longer context windows, but retrieval quality degrades long before the window fills, and users pay for tokens they never needed. The winning products will be the ones that decide what to forget.",
		PublicationDate: "2024",
		Category:        "Opinion",
		Link:            "2402.19173",
		WhyMatters:      "Product economics, not benchmarks, decide which capabilities survive.",
		Upvotes:         15,
		Timestamp:       1709000000000,
		ReadTime:        "7 min",
	},
	{
		ID:              "tt-006",
		Title:           "Sovereign Clouds, Splintered Internet",
		Publisher:       "Global Desk",
		Authors:         []string{"Yusuf Adeyemi"},
		Preview:         "Data-residency law is redrawing the map of the hyperscalers, one region at a time.",
		Body:            "Twelve jurisdictions now require in-country processing for at least one regulated sector. The hyperscalers are responding with sovereign partitions operated by local partners, an architecture that satisfies regulators and quietly fragments the platform roadmap.",
		PublicationDate: "2025",
		Category:        "Global Tech",
		Link:            "10.1000/tt.2025.0112",
		WhyMatters:      "Compliance geography is becoming product architecture.",
		Upvotes:         8,
		Timestamp:       1737000000000,
		ReadTime:        "9 min",
	},
	{
		ID:              "tt-007",
		Title:           "Rate Cuts and the Return of Growth-Stage Capital",
		Publisher:       "Market Watch",
		Authors:         []string{"Claire Beaumont"},
		Preview:         "After two frozen years, growth rounds are clearing again, at valuations the last cycle would not recognize.",
		Body:            "Growth-stage term sheets are moving for the first time since the correction. The clearing prices are lower, the structures cleaner, and the investors fewer. Founders who survived the freeze are discovering that the new normal is simply the old discipline.",
		PublicationDate: "2024",
		Category:        "Markets",
		Link:            model.NoLink,
		WhyMatters:      "The cost of capital sets the tempo for everything downstream of it.",
		Upvotes:         4,
		Timestamp:       1712500000000,
		ReadTime:        "6 min",
	},
	{
		ID:              "tt-008",
		Title:           "An Editor's Note on Algorithmic Front Pages",
		Publisher:       "Opinion Desk",
		Authors:         []string{"The Editorial Board"},
		Preview:         "We rank by reader judgment first and recency second. Here is why we keep it that simple.",
		Body:            "Readers ask why our front page is not personalized. The answer is that a shared front page is the product: a common record of what mattered, ranked by collective judgment and tempered by recency. Personalization optimizes engagement; a newspaper optimizes memory.",
		PublicationDate: "undated",
		Category:        "Opinion",
		Link:            model.NoLink,
		WhyMatters:      "Ranking policy is editorial policy.",
		Upvotes:         3,
		Timestamp:       1700000000000,
		ReadTime:        "3 min",
	},
}
