package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/ValentinKolb/roads/lib/store"
	"github.com/ValentinKolb/roads/rpc/common"
	"github.com/ValentinKolb/roads/rpc/serializer"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("dispatcher")

// Fixed responses of the protocol
const (
	FinishResponse  = "finish"
	UnknownResponse = "unknown command"
	ErrorResponse   = "error: no such table or db is unavailable"
)

// Dispatcher turns command lines into response lines.
// It holds references to the store and the serializer but does not own them.
type Dispatcher struct {
	store      store.IStore
	serializer serializer.ISerializer
}

// NewDispatcher creates a dispatcher answering from s, encoding results with ser
func NewDispatcher(s store.IStore, ser serializer.ISerializer) *Dispatcher {
	return &Dispatcher{
		store:      s,
		serializer: ser,
	}
}

// Response returns the response line for a command line. It never fails:
// store failures are logged and answered with ErrorResponse.
func (d *Dispatcher) Response(ctx context.Context, line string) string {
	return d.respond(ctx, Parse(line))
}

// Handle is the transport handler. closeAfter is set when the client asked to finish.
func (d *Dispatcher) Handle(ctx context.Context, line string) (resp string, closeAfter bool) {
	cmd := Parse(line)
	return d.respond(ctx, cmd), cmd.Kind == KindFinish
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (d *Dispatcher) respond(ctx context.Context, cmd Command) string {
	start := time.Now()
	kind := cmd.Kind.String()
	common.CommandCounter(kind).Inc()
	defer common.CommandDuration(kind).UpdateDuration(start)

	switch cmd.Kind {
	case KindFinish:
		return FinishResponse
	case KindUnknown:
		return UnknownResponse
	}

	if cmd.Err != nil {
		common.StoreErrorsTotal.Inc()
		Logger.Warningf("getResponse() invalid command: %v", cmd.Err)
		return ErrorResponse
	}

	result, err := d.query(ctx, cmd)
	if err != nil {
		common.StoreErrorsTotal.Inc()
		var storeErr *store.Error
		if errors.As(err, &storeErr) {
			Logger.Errorf("getResponse() exception: %v", storeErr)
		} else {
			Logger.Errorf("getResponse() unexpected error: %v", err)
		}
		return ErrorResponse
	}

	b, err := d.serializer.Serialize(result)
	if err != nil {
		Logger.Errorf("getResponse() failed to serialize %s result: %v", kind, err)
		return ErrorResponse
	}
	return string(b)
}

// query runs the store operation of a command and returns its result
func (d *Dispatcher) query(ctx context.Context, cmd Command) (any, error) {
	switch cmd.Kind {
	case KindGetCountries:
		return d.store.GetCountries(ctx)
	case KindGetRoads:
		return d.store.GetRoadsByCountryID(ctx, cmd.CountryID)
	case KindGetTowns:
		return d.store.GetTownsByCountryID(ctx, cmd.CountryID)
	default:
		return nil, errors.New("command has no store operation: " + cmd.Kind.String())
	}
}
