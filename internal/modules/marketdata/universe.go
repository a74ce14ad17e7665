package marketdata

import (
	"github.com/aristath/invest-planner/internal/clients/moex"
	"github.com/aristath/invest-planner/internal/domain"
)

// UniverseEntry names one instrument the catalog tracks.
type UniverseEntry struct {
	Ticker string
	Name   string
	Class  domain.AssetClass
}

// Market maps the entry's asset class to the ISS market it trades on.
func (u UniverseEntry) Market() moex.Market {
	if u.Class.IsBond() {
		return moex.MarketBonds
	}
	return moex.MarketShares
}

// DefaultUniverse is the tracked MOEX instrument set: the blue-chip
// stocks the selection whitelists draw from, OFZ issues covering each
// maturity bucket, and one ETF each for gold and real estate.
func DefaultUniverse() []UniverseEntry {
	return []UniverseEntry{
		{Ticker: "SBER", Name: "Sberbank", Class: domain.ClassStock},
		{Ticker: "GAZP", Name: "Gazprom", Class: domain.ClassStock},
		{Ticker: "LKOH", Name: "Lukoil", Class: domain.ClassStock},
		{Ticker: "GMKN", Name: "Nornickel", Class: domain.ClassStock},
		{Ticker: "ROSN", Name: "Rosneft", Class: domain.ClassStock},
		{Ticker: "MGNT", Name: "Magnit", Class: domain.ClassStock},
		{Ticker: "TCSG", Name: "TCS Group", Class: domain.ClassStock},
		{Ticker: "TATN", Name: "Tatneft", Class: domain.ClassStock},
		{Ticker: "NLMK", Name: "NLMK", Class: domain.ClassStock},

		{Ticker: "SU26227RMFS1", Name: "OFZ 26227", Class: domain.ClassBondShort},
		{Ticker: "SU26229RMFS3", Name: "OFZ 26229", Class: domain.ClassBondShort},
		{Ticker: "SU26228RMFS5", Name: "OFZ 26228", Class: domain.ClassBondMedium},
		{Ticker: "SU26235RMFS0", Name: "OFZ 26235", Class: domain.ClassBondMedium},
		{Ticker: "SU26230RMFS1", Name: "OFZ 26230", Class: domain.ClassBondLong},
		{Ticker: "SU26238RMFS4", Name: "OFZ 26238", Class: domain.ClassBondLong},

		{Ticker: "TGLD", Name: "Gold ETF", Class: domain.ClassGold},
		{Ticker: "TKVM", Name: "Real Estate Fund", Class: domain.ClassRealEstate},
	}
}
