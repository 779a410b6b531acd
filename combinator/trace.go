package combinator

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("vyparse.combinator")

// Trace logs every application of p at debug level. It does not change the
// result.
func Trace[I Sized, O any](name string, p Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, error) {
		log.Debugf("%s: enter, %d remaining", name, in.Len())
		rest, out, err := p(in)
		if err != nil {
			log.Debugf("%s: %s: %v", name, ReasonOf(err), err)
			return rest, out, err
		}
		log.Debugf("%s: ok, consumed %d", name, in.Len()-rest.Len())
		return rest, out, nil
	}
}
