package wordcloud

import (
	"strings"

	"github.com/samber/lo"
)

// stopwords are common English words that carry no topic on their own.
var stopwords = lo.SliceToMap(strings.Fields(`a about above after again against all also am an and any are aren't as at
be because been before being below between both but by can can't cannot could couldn't
did didn't do does doesn't doing don't down during each else ever few for from further
get had hadn't has hasn't have haven't having he he'd he'll he's her here here's hers
herself him himself his how how's however i i'd i'll i'm i've if in into is isn't it
it's its itself just let's like me more most mustn't my myself no nor not of off on
once only or other otherwise ought our ours ourselves out over own same shall shan't she
she'd she'll she's should shouldn't since so some such than that that's the their theirs
them themselves then there there's these they they'd they'll they're they've this those
through to too under until up very was wasn't we we'd we'll we're we've were weren't what
what's when when's where where's which while who who's whom why why's with won't would
wouldn't you you'd you'll you're you've your yours yourself yourselves com www http https`),
	func(w string) (string, bool) { return w, true })
