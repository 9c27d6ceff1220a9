package topology

import "fmt"

// Measure names form the fixed vocabulary the orchestrator accepts.
const (
	MeasureN              = "N"
	MeasureE              = "E"
	MeasureAvgDeg         = "avgdeg"
	MeasureDensity        = "density"
	MeasureClustering     = "clustering"
	MeasureCharPath       = "char_path"
	MeasureCloseness      = "closeness"
	MeasureRadiality      = "radiality"
	MeasureEfficiencyGlob = "efficiency_glob"
	MeasureEfficiencyLoc  = "efficiency_loc"
	MeasureAssortativity  = "assortativity"
	MeasureLCPCorr        = "LCPcorr"
	MeasureEBC            = "EBC"
	MeasureBC             = "BC"
	MeasureModularity     = "modularity"
	MeasureStructCons     = "struct_cons"
	MeasurePowerlawGamma  = "powerlaw_gamma"
	MeasurePowerlawP      = "powerlaw_p"
	MeasureOmega          = "smallworld_omega"
	MeasureSigma          = "smallworld_sigma"
	MeasureOmegaEff       = "smallworld_omega_eff"
	MeasureSigmaEff       = "smallworld_sigma_eff"
)

// AllMeasures lists the full vocabulary in the order an empty request
// computes them.
func AllMeasures() []string {
	return []string{
		MeasureN, MeasureE, MeasureAvgDeg, MeasureDensity,
		MeasureClustering, MeasureCharPath, MeasureCloseness,
		MeasureRadiality, MeasureEfficiencyGlob, MeasureEfficiencyLoc,
		MeasureAssortativity, MeasureLCPCorr, MeasureEBC, MeasureBC,
		MeasureModularity, MeasureStructCons, MeasurePowerlawGamma,
		MeasurePowerlawP, MeasureOmega, MeasureSigma, MeasureOmegaEff,
		MeasureSigmaEff,
	}
}

var vocabulary = func() map[string]struct{} {
	v := make(map[string]struct{})
	for _, m := range AllMeasures() {
		v[m] = struct{}{}
	}
	return v
}()

// validateMeasures rejects names outside the vocabulary.
func validateMeasures(measures []string) error {
	for _, m := range measures {
		if _, ok := vocabulary[m]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidMeasureName, m)
		}
	}
	return nil
}
