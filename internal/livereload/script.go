package livereload

import "html/template"

type scriptConfig struct {
	Path          string
	RetryInterval uint
	MaxRetries    uint
}

// The page reloads once a new socket opens after the old one dropped.
var scriptTemplate = template.Must(template.New("livereload").Parse(`
  (() => {
    const url = (location.protocol === "https:" ? "wss://" : "ws://") + location.host + "{{.Path}}";
    const connect = (attempt) => {
      const ws = new WebSocket(url);
      ws.onopen = () => {
        if (attempt > 0) {
          location.reload();
        }
      };
      ws.onclose = () => {
        if (attempt >= {{.MaxRetries}}) {
          console.error("livereload: server did not come back");
          return;
        }
        setTimeout(() => connect(attempt + 1), {{.RetryInterval}});
      };
    };
    connect(0);
  })();
`))
