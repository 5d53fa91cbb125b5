package catalog

// Builtin returns the curated ideas every catalog starts with.
func Builtin() []Idea {
	return []Idea{
		{
			ID:               "1",
			Title:            "AI-Powered Urban Farming",
			Category:         "AgriTech",
			ShortDescription: "Modular, autonomous vertical farming units for residential high-rises managed by predictive AI.",
			Icon:             "🌿",
		},
		{
			ID:               "2",
			Title:            "Drone Security Service",
			Category:         "Security",
			ShortDescription: "On-demand aerial surveillance perimeter defense for private estates and events using swarm technology.",
			Icon:             "🛸",
		},
		{
			ID:               "3",
			Title:            "Holographic Telepresence Suites",
			Category:         "Communications",
			ShortDescription: "Next-gen remote work pods offering zero-latency, volumetric 3D meeting experiences.",
			Icon:             "📡",
		},
		{
			ID:               "4",
			Title:            "Neural Wellness Spas",
			Category:         "HealthTech",
			ShortDescription: "Bio-feedback meditation centers using non-invasive brain-computer interfaces to optimize mental states.",
			Icon:             "🧠",
		},
		{
			ID:               "5",
			Title:            "Hyper-Local Energy Trading",
			Category:         "FinTech / Energy",
			ShortDescription: "Blockchain-based peer-to-peer renewable energy marketplace for neighborhood microgrids.",
			Icon:             "⚡",
		},
	}
}
