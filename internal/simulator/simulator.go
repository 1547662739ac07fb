package simulator

import (
	"fmt"
	"log"

	"github.com/jaswdr/faker"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/factories"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

// Simulator wires the run together: entities, demand model, order and
// courier engines, edge-case injection and the validation report. One
// instance covers one simulated day.
type Simulator struct {
	Config *models.Config

	rng   *Rand
	reg   *Registry
	stats *Stats

	OrderEvents   []models.OrderEvent
	CourierEvents []models.CourierEvent
	Report        *ValidationReport
}

func NewSimulator(config *models.Config) *Simulator {
	return &Simulator{
		Config: config,
		rng:    NewRand(int64(config.Seed)),
		stats:  NewStats(),
	}
}

// Generate runs the full simulation in memory. Call order is fixed so a
// (seed, parameters) pair always reproduces the same event sequences.
func (s *Simulator) Generate() error {
	cfg := s.Config

	zones, err := models.BuildZones(cfg.City, cfg.NumZones)
	if err != nil {
		return err
	}

	fake := faker.NewWithSeed(s.rng.Rand)
	numCustomers := cfg.NumOrders / 3
	if numCustomers < 50 {
		numCustomers = 50
	}
	restaurants := factories.NewRestaurantFactory(s.rng.Rand, fake).CreateRestaurants(cfg.NumRestaurants, zones)
	couriers := factories.NewCourierFactory(s.rng.Rand, fake).CreateCouriers(cfg.NumCouriers, zones)
	customers := factories.NewCustomerFactory(fake).CreateCustomers(numCustomers)
	s.reg = NewRegistry(zones, restaurants, couriers, customers)

	demand := NewDemandModel(cfg.BaseDate, cfg.IsWeekend(), cfg.SurgeFactor)
	orderEngine := NewOrderEngine(cfg, s.reg, demand, s.rng, s.stats)
	courierEngine := NewCourierEngine(cfg, s.reg, orderEngine, s.rng, s.stats)
	injector := NewEdgeCaseInjector(cfg, s.rng, s.stats)

	placements := orderEngine.GeneratePlacements()
	s.OrderEvents = orderEngine.ProcessPlacements(placements)
	s.OrderEvents = injector.InjectOrderDuplicates(s.OrderEvents)
	injector.InjectOrderLateness(s.OrderEvents)

	s.CourierEvents = courierEngine.GenerateEvents()
	s.CourierEvents = injector.InjectCourierDuplicates(s.CourierEvents)
	injector.InjectCourierLateness(s.CourierEvents)

	s.Report = BuildReport(s.OrderEvents, s.CourierEvents, s.stats, cfg)
	return nil
}

// Run generates the simulation and delivers it: streaming replay when
// configured, batch files otherwise.
func (s *Simulator) Run() error {
	cfg := s.Config

	log.Printf("Food delivery event generator: city=%s date=%s weekend=%v orders=%d couriers=%d restaurants=%d zones=%d seed=%d",
		cfg.City, cfg.BaseDate.Format("2006-01-02"), cfg.IsWeekend(),
		cfg.NumOrders, cfg.NumCouriers, cfg.NumRestaurants, cfg.NumZones, cfg.Seed)

	if err := s.Generate(); err != nil {
		return err
	}

	if cfg.Stream {
		out, err := s.streamDestination()
		if err != nil {
			return err
		}
		defer out.Close()
		return NewTimelineEmitter(cfg.SpeedFactor).Stream(s.OrderEvents, s.CourierEvents, out)
	}

	if err := NewBatchWriter(cfg).WriteAll(s.OrderEvents, s.CourierEvents, s.Report); err != nil {
		return err
	}

	log.Printf("Done: %d order events, %d courier events, %d duplicates, %d late, %d fraud clusters",
		s.Report.TotalOrderEvents, s.Report.TotalCourierEvents,
		s.Report.DuplicatesInjected["order"]+s.Report.DuplicatesInjected["courier"],
		s.Report.LateEventsInjected["order"]+s.Report.LateEventsInjected["courier"],
		s.Report.FraudClustersInjected)
	for _, warning := range s.Report.DataQualityWarnings {
		log.Printf("Data quality warning: %s", warning)
	}
	return nil
}

func (s *Simulator) streamDestination() (OutputDestination, error) {
	if s.Config.KafkaEnabled {
		out, err := NewKafkaOutput(s.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to set up Kafka output: %w", err)
		}
		return out, nil
	}
	return &ConsoleOutput{}, nil
}
