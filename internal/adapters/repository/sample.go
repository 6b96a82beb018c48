package repository

import (
	"time"

	"github.com/summitrec/summitrec/internal/domain/model"
)

func at(day, hour, min int) time.Time {
	return time.Date(2026, time.January, day, hour, min, 0, 0, time.UTC)
}

// SampleEvents returns the bundled demo corpus, used when no events file is
// configured.
func SampleEvents() []model.Event {
	return []model.Event{
		{
			ID:          "WEF2026-001",
			Title:       "AI Governance for Global Good",
			Description: "Exploring frameworks for responsible AI development and deployment across borders. Discussion on international cooperation for AI safety standards.",
			Topics:      []string{"Artificial Intelligence", "Governance", "Technology Policy", "Global Cooperation"},
			Location:    "Congress Centre",
			Venue:       "Jakobshorn Hall",
			StartTime:   at(20, 9, 0),
			EndTime:     at(20, 10, 30),
			Speakers:    []string{"Dr. Fei-Fei Li", "Yoshua Bengio", "Margrethe Vestager"},
			Capacity:    300,
			Track:       "Technology & Innovation",
			Lat:         46.8027,
			Lon:         9.8360,
		},
		{
			ID:          "WEF2026-002",
			Title:       "Climate Finance Revolution",
			Description: "Mobilizing trillions for climate action. Innovative financial instruments, carbon markets, and green bonds for sustainable development.",
			Topics:      []string{"Climate Change", "Finance", "Sustainability", "Green Bonds", "Carbon Markets"},
			Location:    "Congress Centre",
			Venue:       "Parsenn Hall",
			StartTime:   at(20, 11, 0),
			EndTime:     at(20, 12, 30),
			Speakers:    []string{"Mark Carney", "Christiana Figueres", "Larry Fink"},
			Capacity:    250,
			Track:       "Climate & Sustainability",
			Lat:         46.8030,
			Lon:         9.8365,
		},
		{
			ID:          "WEF2026-003",
			Title:       "The Future of Work: Human-AI Collaboration",
			Description: "Reimagining the workforce in an age of automation. Skills development, education reform, and creating meaningful employment.",
			Topics:      []string{"Future of Work", "Automation", "Education", "Skills Development", "Human Capital"},
			Location:    "Congress Centre",
			Venue:       "Flueela Hall",
			StartTime:   at(20, 14, 0),
			EndTime:     at(20, 15, 30),
			Speakers:    []string{"Satya Nadella", "Ginni Rometty", "Andrew Ng"},
			Capacity:    400,
			Track:       "Economy & Society",
			Lat:         46.8025,
			Lon:         9.8355,
		},
		{
			ID:          "WEF2026-004",
			Title:       "Blockchain and Decentralized Finance",
			Description: "The transformation of global financial systems through blockchain technology. CBDCs, DeFi protocols, and regulatory frameworks.",
			Topics:      []string{"Blockchain", "DeFi", "Central Bank Digital Currency", "Financial Innovation", "Regulation"},
			Location:    "Steigenberger Grandhotel Belvedere",
			Venue:       "Bellevue Suite",
			StartTime:   at(20, 16, 0),
			EndTime:     at(20, 17, 30),
			Speakers:    []string{"Vitalik Buterin", "Christine Lagarde", "Brian Armstrong"},
			Capacity:    150,
			Track:       "Finance & Technology",
			Lat:         46.8089,
			Lon:         9.8376,
		},
		{
			ID:          "WEF2026-005",
			Title:       "Global Health Resilience",
			Description: "Building pandemic-proof healthcare systems. Lessons from COVID-19 for future health security and equitable vaccine distribution.",
			Topics:      []string{"Global Health", "Pandemic Preparedness", "Healthcare Systems", "Vaccine Equity"},
			Location:    "Congress Centre",
			Venue:       "Sanada Hall",
			StartTime:   at(21, 9, 0),
			EndTime:     at(21, 10, 30),
			Speakers:    []string{"Dr. Tedros Adhanom", "Bill Gates", "Dr. Anthony Fauci"},
			Capacity:    350,
			Track:       "Health & Wellbeing",
			Lat:         46.8028,
			Lon:         9.8362,
		},
		{
			ID:          "WEF2026-006",
			Title:       "Geopolitics of Energy Transition",
			Description: "Navigating the shift from fossil fuels to renewables. Energy security, critical minerals, and international power dynamics.",
			Topics:      []string{"Energy Transition", "Geopolitics", "Renewable Energy", "Critical Minerals", "Energy Security"},
			Location:    "Congress Centre",
			Venue:       "Wisshorn Hall",
			StartTime:   at(21, 11, 0),
			EndTime:     at(21, 12, 30),
			Speakers:    []string{"Fatih Birol", "Jennifer Granholm", "Sultan Al Jaber"},
			Capacity:    280,
			Track:       "Energy & Environment",
			Lat:         46.8026,
			Lon:         9.8358,
		},
		{
			ID:          "WEF2026-007",
			Title:       "Cybersecurity in the Quantum Age",
			Description: "Preparing for quantum computing threats to current encryption. Post-quantum cryptography and critical infrastructure protection.",
			Topics:      []string{"Cybersecurity", "Quantum Computing", "Cryptography", "Critical Infrastructure"},
			Location:    "Hotel & Spa Waldhaus Davos",
			Venue:       "Alpine Conference Room",
			StartTime:   at(21, 14, 0),
			EndTime:     at(21, 15, 30),
			Speakers:    []string{"Sundar Pichai", "Jen Easterly", "Meredith Whittaker"},
			Capacity:    120,
			Track:       "Technology & Security",
			Lat:         46.7942,
			Lon:         9.8156,
		},
		{
			ID:          "WEF2026-008",
			Title:       "Nature-Based Solutions for Climate",
			Description: "Harnessing ecosystems for carbon sequestration. Forest conservation, ocean restoration, and biodiversity credits.",
			Topics:      []string{"Nature-Based Solutions", "Carbon Sequestration", "Biodiversity", "Conservation", "Ecosystem Restoration"},
			Location:    "Congress Centre",
			Venue:       "Dischma Hall",
			StartTime:   at(21, 16, 0),
			EndTime:     at(21, 17, 30),
			Speakers:    []string{"Jane Goodall", "David Attenborough", "Hindou Ibrahim"},
			Capacity:    320,
			Track:       "Climate & Sustainability",
			Lat:         46.8029,
			Lon:         9.8363,
		},
		{
			ID:          "WEF2026-009",
			Title:       "The Metaverse Economy",
			Description: "Virtual worlds and their economic implications. Digital assets, virtual real estate, and the future of digital commerce.",
			Topics:      []string{"Metaverse", "Virtual Reality", "Digital Economy", "NFTs", "Digital Commerce"},
			Location:    "Steigenberger Grandhotel Belvedere",
			Venue:       "Crystal Ballroom",
			StartTime:   at(22, 9, 0),
			EndTime:     at(22, 10, 30),
			Speakers:    []string{"Tim Sweeney", "Mark Zuckerberg", "Jensen Huang"},
			Capacity:    200,
			Track:       "Technology & Innovation",
			Lat:         46.8091,
			Lon:         9.8378,
		},
		{
			ID:          "WEF2026-010",
			Title:       "Inclusive Growth and Inequality",
			Description: "Addressing wealth disparity in a changing economy. Social mobility, universal basic income, and stakeholder capitalism.",
			Topics:      []string{"Inequality", "Inclusive Growth", "Social Policy", "Stakeholder Capitalism", "UBI"},
			Location:    "Congress Centre",
			Venue:       "Promenade Hall",
			StartTime:   at(22, 11, 0),
			EndTime:     at(22, 12, 30),
			Speakers:    []string{"Esther Duflo", "Ray Dalio", "Klaus Schwab"},
			Capacity:    380,
			Track:       "Economy & Society",
			Lat:         46.8024,
			Lon:         9.8352,
		},
		{
			ID:          "WEF2026-011",
			Title:       "Space Economy Frontiers",
			Description: "Commercial space exploration and its economic potential. Satellite infrastructure, lunar mining, and space tourism.",
			Topics:      []string{"Space Economy", "Commercial Space", "Satellite Technology", "Space Tourism"},
			Location:    "Congress Centre",
			Venue:       "Schwarzhorn Hall",
			StartTime:   at(22, 14, 0),
			EndTime:     at(22, 15, 30),
			Speakers:    []string{"Elon Musk", "Peter Beck", "Gwynne Shotwell"},
			Capacity:    450,
			Track:       "Technology & Innovation",
			Lat:         46.8031,
			Lon:         9.8367,
		},
		{
			ID:          "WEF2026-012",
			Title:       "Food Systems Transformation",
			Description: "Feeding 10 billion sustainably. Agricultural innovation, alternative proteins, and reducing food waste.",
			Topics:      []string{"Food Security", "Sustainable Agriculture", "Alternative Proteins", "Food Waste", "AgriTech"},
			Location:    "Hotel & Spa Waldhaus Davos",
			Venue:       "Garden Terrace",
			StartTime:   at(22, 16, 0),
			EndTime:     at(22, 17, 30),
			Speakers:    []string{"Pat Brown", "David Kenny", "Ertharin Cousin"},
			Capacity:    180,
			Track:       "Climate & Sustainability",
			Lat:         46.7944,
			Lon:         9.8158,
		},
	}
}
